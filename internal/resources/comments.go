package resources

import (
	"time"

	"inkwell/internal/admin"
	"inkwell/internal/models"
)

// CommentAuthorField selects the comment author.
func CommentAuthorField() admin.Field {
	return admin.Field{
		Key:      "user_id",
		Label:    "Author",
		Kind:     admin.KindSelect,
		Required: true,
		Relationship: &admin.Relationship{
			Name:           "author",
			Resource:       Users,
			TitleAttribute: "name",
			Searchable:     true,
		},
	}
}

// CommentPostField selects the parent post.
func CommentPostField() admin.Field {
	return admin.Field{
		Key:      "post_id",
		Label:    "Post",
		Kind:     admin.KindSelect,
		Required: true,
		Relationship: &admin.Relationship{
			Name:           "post",
			Resource:       Posts,
			TitleAttribute: "title",
			Searchable:     true,
		},
	}
}

func CommentContentField() admin.Field {
	return admin.Field{Key: "content", Label: "Content", Kind: admin.KindRichText, Required: true}
}

func CommentApprovedField() admin.Field {
	return admin.Field{Key: "approved_at", Label: "Approved at", Kind: admin.KindDate}
}

// CommentForm edits a comment. Top-level creation also needs post_id,
// which is not part of the form.
func CommentForm() admin.Form {
	return admin.NewForm(CommentAuthorField(), CommentContentField(), CommentApprovedField())
}

// postLink is the post edit page, or empty once the post row is gone.
// Soft-deleted posts are loaded unscoped and still link.
func postLink(c models.Comment) string {
	if c.Post == nil {
		return ""
	}
	return admin.EditURL(Posts, c.PostID)
}

func authorLink(c models.Comment) string {
	if c.Author == nil {
		return ""
	}
	return admin.EditURL(Users, c.UserID)
}

func commentIDColumn() admin.Column[models.Comment] {
	return admin.Column[models.Comment]{Key: "id", Label: "ID", Sortable: true, SortExpr: "comments.id",
		State: func(c models.Comment) any { return c.ID }}
}

func commentPostColumn() admin.Column[models.Comment] {
	return admin.Column[models.Comment]{
		Key:             "post.id",
		Label:           "Post",
		Sortable:        true,
		SortExpr:        "comments.post_id",
		Searchable:      true,
		SearchExpr:      "CAST(comments.post_id AS TEXT)",
		Toggleable:      true,
		HiddenByDefault: true,
		State:           func(c models.Comment) any { return c.PostID },
		URL:             postLink,
		OpenURLInNewTab: true,
	}
}

func commentAuthorColumn() admin.Column[models.Comment] {
	return admin.Column[models.Comment]{
		Key:        "author.name",
		Label:      "Author",
		Sortable:   true,
		SortExpr:   "author.name",
		Searchable: true,
		SearchExpr: "author.name",
		State: func(c models.Comment) any {
			if c.Author == nil {
				return nil
			}
			return c.Author.Name
		},
		URL:             authorLink,
		OpenURLInNewTab: true,
	}
}

func commentContentColumn() admin.Column[models.Comment] {
	return admin.Column[models.Comment]{
		Key:        "content",
		Label:      "Content",
		Sortable:   true,
		SortExpr:   "comments.content",
		Searchable: true,
		SearchExpr: "comments.content",
		Limit:      100,
		Wrap:       true,
		State:      func(c models.Comment) any { return c.Content },
		Description: func(c models.Comment) string {
			if c.Post == nil {
				return ""
			}
			return c.Post.Title
		},
		DescriptionPosition: admin.DescriptionAbove,
	}
}

func commentApprovedColumn() admin.Column[models.Comment] {
	return admin.Column[models.Comment]{Key: "approved_at", Label: "Approved", Render: admin.RenderBoolean,
		Sortable: true, SortExpr: "comments.approved_at",
		State:   func(c models.Comment) any { return c.ApprovedAt },
		Tooltip: func(c models.Comment) string { return admin.FormatTimestamp(c.ApprovedAt) }}
}

// CommentColumns are the columns of the comments table.
func CommentColumns() []admin.Column[models.Comment] {
	return []admin.Column[models.Comment]{
		commentIDColumn(),
		commentPostColumn(),
		commentAuthorColumn(),
		commentContentColumn(),
		commentApprovedColumn(),
		CreatedAtColumn("comments", func(c models.Comment) time.Time { return c.CreatedAt }),
		UpdatedAtColumn("comments", func(c models.Comment) time.Time { return c.UpdatedAt }),
	}
}

// CommentActions are the row actions shared by every comments table.
func CommentActions() []admin.Action[models.Comment] {
	return []admin.Action[models.Comment]{
		{Name: "go_to_post", Label: "Go to post", Kind: admin.ActionLink, URL: postLink, OpenURLInNewTab: true},
		editAction(Comments, func(c models.Comment) uint { return c.ID }),
		deleteAction(models.Comment.Trashed),
	}
}

// CommentTable lists comments with trashed filtering.
func CommentTable() admin.Table[models.Comment] {
	return admin.Table[models.Comment]{
		Columns:       CommentColumns(),
		Filters:       []admin.Filter{admin.TrashedFilter()},
		Actions:       CommentActions(),
		BulkActions:   softDeleteBulkActions,
		HeaderActions: createHeaderAction,
		RecordKey:     func(c models.Comment) uint { return c.ID },
		Trashed:       models.Comment.Trashed,
	}
}

func commentRelationTable(cols []admin.Column[models.Comment]) admin.Table[models.Comment] {
	return admin.Table[models.Comment]{
		Columns:       cols,
		Actions:       CommentActions(),
		BulkActions:   deleteBulkAction,
		HeaderActions: createHeaderAction,
		RecordKey:     func(c models.Comment) uint { return c.ID },
		Trashed:       models.Comment.Trashed,
	}
}

// CommentSpec is the data-only schema of the comments resource.
func CommentSpec() admin.ResourceSpec {
	return admin.ResourceSpec{
		Name:  Comments,
		Label: "Comments",
		Form:  CommentForm().Spec(),
		Table: CommentTable().Spec(),
	}
}
