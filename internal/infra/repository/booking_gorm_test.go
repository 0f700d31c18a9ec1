package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestActiveListingLocksOnlyInBarberScope(t *testing.T) {
	plain := &BookingGormRepository{}
	assert.Empty(t, plain.activeListingClauses(), "availability reads must not take row locks")

	scoped := &BookingGormRepository{forUpdate: true}
	conds := scoped.activeListingClauses()
	require.Len(t, conds, 1)
	assert.Equal(t, clause.Locking{Strength: "UPDATE"}, conds[0])
}
