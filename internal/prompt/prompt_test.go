package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindText, false},
		{"text", KindText, false},
		{"Password", KindPassword, false},
		{" dropdown ", KindDropdown, false},
		{"checkbox", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{"text ok", Request{Text: "Name?", Kind: KindText}, ""},
		{"empty text", Request{Text: "  ", Kind: KindText}, "prompt text is required"},
		{"dropdown without choices", Request{Text: "Pick", Kind: KindDropdown}, "at least one option"},
		{"dropdown ok", Request{Text: "Pick", Kind: KindDropdown, Choices: []string{"a"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaults(t *testing.T) {
	r := Request{Text: "x"}
	assert.Equal(t, DefaultTitle, r.TitleOrDefault())
	assert.Equal(t, "", r.DefaultValue())

	r.Title = "Setup"
	r.Default = strPtr("bob")
	assert.Equal(t, "Setup", r.TitleOrDefault())
	assert.Equal(t, "bob", r.DefaultValue())
}

func TestDefaultChoice(t *testing.T) {
	r := Request{Text: "Color", Kind: KindDropdown, Choices: []string{"red", "green", "blue"}}
	assert.Equal(t, 0, r.DefaultChoiceIndex())
	assert.Equal(t, "red", r.DefaultChoice())

	r.Default = strPtr("blue")
	assert.Equal(t, 2, r.DefaultChoiceIndex())

	r.Default = strPtr("purple")
	assert.Equal(t, 0, r.DefaultChoiceIndex(), "unmatched default falls back to the first choice")
	assert.Equal(t, "", Request{}.DefaultChoice())
}

func TestOutcomes(t *testing.T) {
	a := Answer("v")
	assert.Equal(t, Answered, a.Status)
	assert.Equal(t, "v", a.Value)

	assert.Equal(t, Cancelled, Cancel().Status)

	f := Fail(nil)
	assert.Equal(t, Failed, f.Status)
	assert.ErrorIs(t, f.Err, ErrMechanism)

	u := Failf(ErrUnavailable, "zenity not found")
	assert.True(t, u.Unavailable())
	assert.False(t, u.Invalid())
	assert.Contains(t, u.Err.Error(), "zenity not found")

	v := Fail(errors.Join(ErrValidation, errors.New("x")))
	assert.True(t, v.Invalid())
	assert.False(t, Cancel().Unavailable())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "answered", Answered.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
