package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(-3, 5, 95))
	assert.Equal(t, 95, Clamp(120, 5, 95))
	assert.Equal(t, 42, Clamp(42, 5, 95))
}

func TestGenerateID(t *testing.T) {
	id := GenerateID("merchant", "Hans Müller")
	assert.True(t, strings.HasPrefix(id, "merchant-hans-m-ller-"), id)
	assert.Len(t, id, len("merchant-hans-m-ller-")+8)

	bare := GenerateID("sale", "")
	assert.Len(t, bare, len("sale-")+8)
	assert.NotEqual(t, GenerateID("sale", ""), bare)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "wine-brandy", slugify("Wine/Brandy"))
	assert.Equal(t, "hans-muller", slugify("  Hans   Muller "))
}
