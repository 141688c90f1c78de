package parsecompare_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/parsecompare"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := parsecompare.Errorf(parsecompare.EFETCH, "HTTP error! status: %d", 404)

	assert.Equal(t, parsecompare.EFETCH, parsecompare.ErrorCode(err))
	assert.Equal(t, "HTTP error! status: 404", parsecompare.ErrorMessage(err))
	assert.Equal(t, "HTTP error! status: 404", err.Error())
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parsecompare.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parsecompare.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("compare: %w", parsecompare.Errorf(parsecompare.EINVALID, "URL is required"))

	assert.Equal(t, parsecompare.EINVALID, parsecompare.ErrorCode(err))
	assert.Equal(t, "URL is required", parsecompare.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, parsecompare.EINTERNAL, parsecompare.ErrorCode(err))
	assert.Equal(t, "boom", parsecompare.ErrorMessage(err))
}
