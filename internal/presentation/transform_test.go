package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CollapsesNewlines(t *testing.T) {
	tr, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, "Acme Mobile Emergency calls only", tr.Apply("Acme Mobile\nEmergency calls only"))
	assert.Equal(t, "a b c", tr.Apply("a\r\nb\rc"))
	assert.Equal(t, "unchanged", tr.Apply("unchanged"))
}

func TestApply_AllCaps(t *testing.T) {
	tr, err := New(Config{AllCaps: true})
	require.NoError(t, err)

	assert.Equal(t, "ACME MOBILE", tr.Apply("Acme Mobile"))
}

func TestApply_AllCapsTurkishLocale(t *testing.T) {
	tr, err := New(Config{AllCaps: true, Locale: "tr"})
	require.NoError(t, err)

	// Turkish upper-cases the dotted i to a dotted capital.
	assert.Equal(t, "İLETİM", tr.Apply("iletim"))
}

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New(Config{Locale: "not a locale"})
	assert.Error(t, err)
}
