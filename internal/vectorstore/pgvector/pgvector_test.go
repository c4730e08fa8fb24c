package pgvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorLiteral(t *testing.T) {
	assert.Equal(t, "[]", vectorLiteral(nil))
	assert.Equal(t, "[1,0,-0.5]", vectorLiteral([]float32{1, 0, -0.5}))
	assert.Equal(t, "[0.25,0.125]", vectorLiteral([]float32{0.25, 0.125}))
}
