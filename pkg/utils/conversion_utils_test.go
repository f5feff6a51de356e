package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrToInt64(t *testing.T) {
	id, err := StrToInt64("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = StrToInt64("abc")
	assert.Error(t, err)

	_, err = StrToInt64("")
	assert.Error(t, err)
}

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))

	p := NewNullString("ana")
	assert.NotNil(t, p)
	assert.Equal(t, "ana", *p)
}
