package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, err := GenerateToken("student@college.com", "Sample Student", "u1", "student")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student@college.com", claims.Email)
	assert.Equal(t, "Sample Student", claims.Name)
	assert.Equal(t, "u1", claims.Uid)
	assert.Equal(t, "student", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, err := GenerateToken("a@b.com", "A", "u1", "student")
	require.NoError(t, err)

	t.Setenv("SECRET_KEY", "another-secret")
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, err := GenerateToken("a@b.com", "A", "u1", "student")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
