package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/catcatalog/internal/catapi"
	"github.com/charlesng35/catcatalog/internal/database/testutil"
)

func newTestCatService(t *testing.T) (*CatService, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewCatService(db, StaticNameGenerator("Generated Name"))
	require.NoError(t, err)
	return svc, db
}

type fakeSearcher struct {
	images []catapi.Image
	err    error
	calls  int
	params catapi.SearchParams
}

func (f *fakeSearcher) SearchImages(_ context.Context, params catapi.SearchParams) ([]catapi.Image, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.images, nil
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
