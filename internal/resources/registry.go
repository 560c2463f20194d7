package resources

import "inkwell/internal/admin"

// Specs returns the schema of every resource in navigation order.
func Specs() []admin.ResourceSpec {
	return []admin.ResourceSpec{UserSpec(), PostSpec(), CommentSpec()}
}

// Spec looks up a resource schema by name.
func Spec(name string) (admin.ResourceSpec, bool) {
	for _, s := range Specs() {
		if s.Name == name {
			return s, true
		}
	}
	return admin.ResourceSpec{}, false
}

// Form returns the top-level form of a resource.
func Form(name string) (admin.Form, bool) {
	switch name {
	case Users:
		return UserForm(), true
	case Posts:
		return PostForm(), true
	case Comments:
		return CommentForm(), true
	}
	return admin.Form{}, false
}

// SelectField finds a relationship-backed field of a resource, searching
// its form first and then its relation manager forms.
func SelectField(resource, key string) (admin.Field, bool) {
	forms := map[string][]admin.Form{
		Users:    {UserForm(), UserPosts().Form, UserComments().Form},
		Posts:    {PostForm(), PostComments().Form},
		Comments: {CommentForm(), admin.NewForm(CommentPostField())},
	}
	for _, form := range forms[resource] {
		if f, ok := form.Field(key); ok && f.Relationship != nil {
			return f, true
		}
	}
	return admin.Field{}, false
}
