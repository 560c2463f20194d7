package resources

import (
	"time"

	"inkwell/internal/admin"
	"inkwell/internal/models"
)

// PostForm edits articles. Changing the title always rewrites the slug.
func PostForm() admin.Form {
	return admin.NewForm(
		admin.Field{
			Key:      "title",
			Label:    "Title",
			Kind:     admin.KindText,
			Required: true,
			Derives:  []admin.Derivation{{Target: "slug", Transform: admin.SlugTransform}},
		},
		admin.Field{Key: "slug", Label: "Slug", Kind: admin.KindText, Required: true, Unique: true},
		admin.Field{Key: "content", Label: "Content", Kind: admin.KindRichText, Required: true},
		admin.Field{Key: "published_at", Label: "Publish at", Kind: admin.KindDateTime, Default: admin.DefaultNow},
	)
}

func postIDColumn() admin.Column[models.Post] {
	return admin.Column[models.Post]{Key: "id", Label: "ID", Sortable: true, SortExpr: "posts.id", Toggleable: true,
		State: func(p models.Post) any { return p.ID }}
}

func postTitleColumn() admin.Column[models.Post] {
	return admin.Column[models.Post]{
		Key:                 "title",
		Label:               "Title",
		Sortable:            true,
		SortExpr:            "posts.title",
		Searchable:          true,
		SearchExpr:          "posts.title",
		State:               func(p models.Post) any { return p.Title },
		Description:         func(p models.Post) string { return p.Slug },
		DescriptionPosition: admin.DescriptionBelow,
	}
}

func postPublishedColumn() admin.Column[models.Post] {
	return admin.Column[models.Post]{Key: "published_at", Label: "Published", Render: admin.RenderBoolean,
		Sortable: true, SortExpr: "posts.published_at",
		State: func(p models.Post) any { return p.PublishedAt }}
}

// PostTable lists articles with their live comment count.
func PostTable() admin.Table[models.Post] {
	return admin.Table[models.Post]{
		Columns: []admin.Column[models.Post]{
			postIDColumn(),
			postTitleColumn(),
			{Key: "comments_count", Label: "Comments", Sortable: true, SortExpr: "comments_count", Toggleable: true,
				State: func(p models.Post) any { return p.CommentsCount }},
			postPublishedColumn(),
			CreatedAtColumn("posts", func(p models.Post) time.Time { return p.CreatedAt }),
			UpdatedAtColumn("posts", func(p models.Post) time.Time { return p.UpdatedAt }),
		},
		Filters: []admin.Filter{admin.TrashedFilter()},
		Actions: []admin.Action[models.Post]{
			editAction(Posts, func(p models.Post) uint { return p.ID }),
			deleteAction(models.Post.Trashed),
		},
		BulkActions:          softDeleteBulkActions,
		HeaderActions:        createHeaderAction,
		RecordTitleAttribute: "title",
		RecordKey:            func(p models.Post) uint { return p.ID },
		Trashed:              models.Post.Trashed,
	}
}

// PostComments manages the comments of a post.
func PostComments() admin.Relation[models.Comment] {
	return admin.Relation[models.Comment]{
		Name:  Comments,
		Label: "Comments",
		Form:  CommentForm(),
		Table: commentRelationTable([]admin.Column[models.Comment]{
			commentIDColumn(),
			commentAuthorColumn(),
			commentContentColumn(),
			commentApprovedColumn(),
			CreatedAtColumn("comments", func(c models.Comment) time.Time { return c.CreatedAt }),
			UpdatedAtColumn("comments", func(c models.Comment) time.Time { return c.UpdatedAt }),
		}),
	}
}

// PostSpec is the data-only schema of the posts resource.
func PostSpec() admin.ResourceSpec {
	return admin.ResourceSpec{
		Name:      Posts,
		Label:     "Posts",
		Form:      PostForm().Spec(),
		Table:     PostTable().Spec(),
		Relations: []admin.RelationSpec{PostComments().Spec()},
	}
}
