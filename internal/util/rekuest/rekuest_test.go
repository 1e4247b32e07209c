package rekuest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daylog.dev/backend/internal/pkg/dlerr"
)

func TestValidVar(t *testing.T) {
	t.Parallel()

	t.Run("Date", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidVar(nil, "2023-06-15", "required,datetime=2006-01-02"))

		err := ValidVar(nil, "15/06/2023", "required,datetime=2006-01-02")
		require.Error(t, err)
		var de *dlerr.DaylogError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, dlerr.CodeInvalidRequest, de.ErrorCode)
		require.NotNil(t, de.Extras)
		assert.Contains(t, *de.Extras, "violations")
	})

	t.Run("Coordinates", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidVar(nil, 35.6812, "latitude"))
		assert.NoError(t, ValidVar(nil, 139.7671, "longitude"))
		assert.Error(t, ValidVar(nil, 91.0, "latitude"))
		assert.Error(t, ValidVar(nil, -181.0, "longitude"))
	})
}

func TestValidStruct(t *testing.T) {
	t.Parallel()

	type req struct {
		Name string `validate:"required"`
	}

	assert.NoError(t, ValidStruct(nil, &req{Name: "daySummary#userId:date"}))

	err := ValidStruct(nil, &req{})
	require.Error(t, err)
	var de *dlerr.DaylogError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dlerr.CodeInvalidRequest, de.ErrorCode)
}
