package catalog

import (
	"strings"

	"github.com/ruminaider/rosterpick/internal/transfer"
)

// Field names shared by every record shape.
const (
	FieldLabel = "label"
)

// Task is one row of the favorite-task pool: a subcategory paired with a
// task name.
type Task struct {
	Subcategory string
	Name        string
}

// ItemID returns "Subcategory/Name".
func (t Task) ItemID() string { return t.Subcategory + "/" + t.Name }

// Field implements transfer.Item.
func (t Task) Field(name string) string {
	switch name {
	case "subcategory":
		return t.Subcategory
	case "task":
		return t.Name
	case FieldLabel:
		return t.Subcategory + " / " + t.Name
	}
	return ""
}

// CrossProduct expands subcategories and tasks into every pairing, in
// subcategory-major order. Blank names are skipped.
func CrossProduct(subcategories, tasks []string) []Task {
	out := make([]Task, 0, len(subcategories)*len(tasks))
	for _, sub := range subcategories {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		for _, task := range tasks {
			task = strings.TrimSpace(task)
			if task == "" {
				continue
			}
			out = append(out, Task{Subcategory: sub, Name: task})
		}
	}
	return out
}

// TaskPredicate matches the category against the subcategory and the text
// against the task name.
func TaskPredicate(m transfer.Matcher) transfer.Predicate[Task] {
	return transfer.FieldPredicate[Task](m, "subcategory", "task")
}

// User is a candidate for the permitted-users pool.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ItemID implements transfer.Item.
func (u User) ItemID() string { return u.ID }

// Field implements transfer.Item.
func (u User) Field(name string) string {
	switch name {
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "role":
		return u.Role
	case FieldLabel:
		if u.Email == "" {
			return u.Name
		}
		return u.Name + " <" + u.Email + ">"
	}
	return ""
}

// Self builds the pinned record for the acting user.
func Self(id, name string) User {
	if name == "" {
		name = id
	}
	return User{ID: id, Name: name + " (you)", Role: "self"}
}

// UserPredicate matches the category against the role and the text against
// name or email.
func UserPredicate(m transfer.Matcher) transfer.Predicate[User] {
	return transfer.FieldPredicate[User](m, "role", "name", "email")
}

// Resource is a candidate for the assigned-resources pool.
type Resource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Location string `json:"location"`
}

// ItemID implements transfer.Item.
func (r Resource) ItemID() string { return r.ID }

// Field implements transfer.Item.
func (r Resource) Field(name string) string {
	switch name {
	case "name":
		return r.Name
	case "kind":
		return r.Kind
	case "location":
		return r.Location
	case FieldLabel:
		if r.Location == "" {
			return r.Name
		}
		return r.Name + " @ " + r.Location
	}
	return ""
}

// ResourcePredicate matches the category against the kind and the text
// against name or location.
func ResourcePredicate(m transfer.Matcher) transfer.Predicate[Resource] {
	return transfer.FieldPredicate[Resource](m, "kind", "name", "location")
}
