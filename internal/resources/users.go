package resources

import (
	"fmt"
	"time"

	"inkwell/internal/admin"
	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password for storage.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// UserForm edits accounts. The password is write-only: it is hashed when
// filled and left untouched when blank on edit.
func UserForm() admin.Form {
	return admin.NewForm(
		admin.Field{Key: "name", Label: "Name", Kind: admin.KindText, Required: true},
		admin.Field{Key: "email", Label: "Email", Kind: admin.KindEmail, Required: true, Unique: true},
		admin.Field{
			Key:                 "password",
			Label:               "Password",
			Kind:                admin.KindPassword,
			RequiredOn:          []admin.Operation{admin.OperationCreate},
			Revealable:          true,
			DehydrateWhenFilled: true,
			Dehydrate:           HashPassword,
		},
		admin.Field{Key: "email_verified_at", Label: "Email verified at", Kind: admin.KindDateTime},
	)
}

// UserTable lists accounts. Users have no trashed filter.
func UserTable() admin.Table[models.User] {
	return admin.Table[models.User]{
		Columns: []admin.Column[models.User]{
			{Key: "id", Label: "ID", Sortable: true, SortExpr: "users.id", Toggleable: true,
				State: func(u models.User) any { return u.ID }},
			{Key: "name", Label: "Name", Sortable: true, SortExpr: "users.name", Searchable: true, SearchExpr: "users.name",
				State: func(u models.User) any { return u.Name }},
			{Key: "email", Label: "Email", Sortable: true, SortExpr: "users.email", Searchable: true, SearchExpr: "users.email",
				State: func(u models.User) any { return u.Email }},
			{Key: "email_verified_at", Label: "Email verified", Render: admin.RenderBoolean,
				Sortable: true, SortExpr: "users.email_verified_at", Toggleable: true,
				State:   func(u models.User) any { return u.EmailVerifiedAt },
				Tooltip: func(u models.User) string { return admin.FormatTimestamp(u.EmailVerifiedAt) }},
			CreatedAtColumn("users", func(u models.User) time.Time { return u.CreatedAt }),
			UpdatedAtColumn("users", func(u models.User) time.Time { return u.UpdatedAt }),
		},
		Actions: []admin.Action[models.User]{
			editAction(Users, func(u models.User) uint { return u.ID }),
		},
		BulkActions:          deleteBulkAction,
		HeaderActions:        createHeaderAction,
		RecordTitleAttribute: "name",
		RecordKey:            func(u models.User) uint { return u.ID },
		Trashed:              models.User.Trashed,
	}
}

// UserPosts manages the posts a user authored.
func UserPosts() admin.Relation[models.Post] {
	return admin.Relation[models.Post]{
		Name:  Posts,
		Label: "Posts",
		Form:  PostForm(),
		Table: admin.Table[models.Post]{
			Columns: []admin.Column[models.Post]{
				postIDColumn(),
				postTitleColumn(),
				postPublishedColumn(),
				CreatedAtColumn("posts", func(p models.Post) time.Time { return p.CreatedAt }),
				UpdatedAtColumn("posts", func(p models.Post) time.Time { return p.UpdatedAt }),
			},
			Actions: []admin.Action[models.Post]{
				editAction(Posts, func(p models.Post) uint { return p.ID }),
				deleteAction(models.Post.Trashed),
			},
			BulkActions:          deleteBulkAction,
			HeaderActions:        createHeaderAction,
			RecordTitleAttribute: "title",
			RecordKey:            func(p models.Post) uint { return p.ID },
			Trashed:              models.Post.Trashed,
		},
	}
}

// UserComments manages the comments a user authored. The owner is the
// author, so the form selects the parent post instead.
func UserComments() admin.Relation[models.Comment] {
	return admin.Relation[models.Comment]{
		Name:  Comments,
		Label: "Comments",
		Form:  admin.NewForm(CommentPostField(), CommentContentField(), CommentApprovedField()),
		Table: commentRelationTable(CommentColumns()),
	}
}

// UserSpec is the data-only schema of the users resource.
func UserSpec() admin.ResourceSpec {
	return admin.ResourceSpec{
		Name:      Users,
		Label:     "Users",
		Form:      UserForm().Spec(),
		Table:     UserTable().Spec(),
		Relations: []admin.RelationSpec{UserPosts().Spec(), UserComments().Spec()},
	}
}
