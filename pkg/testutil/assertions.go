package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofin/financing-service/pkg/money"
)

// RequireNoError fails the test immediately if err is not nil.
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertAmount checks a monetary amount against its expected decimal string
// form, producing readable failures ("348.00" rather than 34800).
func AssertAmount(t *testing.T, expected string, actual money.Amount) {
	t.Helper()
	assert.Equal(t, expected, actual.String())
}
