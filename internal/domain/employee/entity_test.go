package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeAt(t *testing.T) {
	birth := time.Date(2007, time.June, 15, 0, 0, 0, 0, time.UTC)
	emp := Employee{BirthDate: &birth}

	t.Run("day before birthday", func(t *testing.T) {
		age := emp.AgeAt(time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC))
		require.NotNil(t, age)
		assert.Equal(t, 16, *age)
	})

	t.Run("on the birthday", func(t *testing.T) {
		age := emp.AgeAt(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
		require.NotNil(t, age)
		assert.Equal(t, 17, *age)
	})

	t.Run("no birth date on file", func(t *testing.T) {
		assert.Nil(t, Employee{}.AgeAt(time.Now()))
	})
}
