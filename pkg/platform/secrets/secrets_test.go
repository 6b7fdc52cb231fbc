package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "lahu/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, Verify("correct horse", hash))

	err = Verify("battery staple", hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHash_RejectsInvalidInput(t *testing.T) {
	_, err := Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = HashWithCost(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestVerify_MalformedHash(t *testing.T) {
	err := Verify("pw", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.False(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
