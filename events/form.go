package events

import "github.com/emberfield/crosstalk/topic"

// Form event topics.
const (
	// TopicFormSubmitted is published when a form is submitted.
	TopicFormSubmitted topic.Topic = "form:submitted"

	// TopicFormValidated is published after form validation runs.
	TopicFormValidated topic.Topic = "form:validated"

	// TopicFormFieldChanged is published when a field value changes.
	TopicFormFieldChanged topic.Topic = "form:field:changed"
)

// FormSubmitted is published when a form is submitted.
type FormSubmitted struct {
	// FormID identifies the form.
	FormID string

	// Values maps field names to submitted values.
	Values map[string]string
}

// FormValidated is published after form validation runs.
type FormValidated struct {
	// FormID identifies the form.
	FormID string

	// Valid is true when every field passed validation.
	Valid bool

	// Errors maps field names to validation messages.
	Errors map[string]string
}

// FormFieldChanged is published when a field value changes.
type FormFieldChanged struct {
	// FormID identifies the form.
	FormID string

	// Field is the changed field name.
	Field string

	// Value is the new field value.
	Value string
}
