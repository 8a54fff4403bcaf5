package validatex_test

import (
	"testing"

	"github.com/shanco/accessissues/pkg/idx"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/validatex"
	"github.com/stretchr/testify/require"
)

type owner struct {
	UserID string `json:"userId" validate:"required,ulid"`
	Email  string `json:"email" validate:"required,email"`
}

type input struct {
	Name  string `json:"name" validate:"required"`
	Code  string `json:"code" validate:"otp"`
	Owner owner  `json:"owner"`
}

func TestValidate(t *testing.T) {
	v, err := validatex.New()
	require.NoError(t, err)

	t.Run("valid input has no issues", func(t *testing.T) {
		issues, err := v.Validate(input{
			Name:  "Crag Keepers",
			Code:  "012345",
			Owner: owner{UserID: idx.New().String(), Email: "a@x.com"},
		})
		require.NoError(t, err)
		require.Empty(t, issues)
	})

	t.Run("issues use json paths", func(t *testing.T) {
		issues, err := v.Validate(input{
			Code:  "12ab56",
			Owner: owner{UserID: "not-an-id", Email: "nope"},
		})
		require.NoError(t, err)

		require.ElementsMatch(t, []result.Issue{
			{Path: "name", Message: "name is a required field"},
			{Path: "code", Message: "code must be 6 digits"},
			{Path: "owner.userId", Message: "userId must be a valid id"},
			{Path: "owner.email", Message: "email must be a valid email address"},
		}, issues)
	})

	t.Run("non struct input is an error", func(t *testing.T) {
		_, err := v.Validate(42)
		require.Error(t, err)
	})
}

func TestVar(t *testing.T) {
	v, err := validatex.Default()
	require.NoError(t, err)

	issues, err := v.Var("a@x.com", "required,email")
	require.NoError(t, err)
	require.Empty(t, issues)

	issues, err = v.Var("not-an-email", "required,email")
	require.NoError(t, err)
	require.Len(t, issues, 1)
}

func TestDefaultIsShared(t *testing.T) {
	a, err := validatex.Default()
	require.NoError(t, err)
	b, err := validatex.Default()
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestNewRegistersCustomRules(t *testing.T) {
	for range 2 {
		v, err := validatex.New()
		require.NoError(t, err)

		t.Run("ulid message overrides built in", func(t *testing.T) {
			issues, err := v.Var("not-an-id", "ulid")
			require.NoError(t, err)
			require.Len(t, issues, 1)
			require.Contains(t, issues[0].Message, "must be a valid id")
		})

		t.Run("otp", func(t *testing.T) {
			issues, err := v.Var("12345", "otp")
			require.NoError(t, err)
			require.Len(t, issues, 1)
			require.Contains(t, issues[0].Message, "must be 6 digits")
		})
	}
}
