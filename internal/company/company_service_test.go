package company

import (
	"context"
	"testing"

	companyerrors "github.com/justinnewbold/PattyShack-sub001/internal/company/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCompanyRepo struct {
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*Company, error)
	updateFn           func(ctx context.Context, company *Company) error
	createLocationFn   func(ctx context.Context, loc *Location) error
	findLocationsFn    func(ctx context.Context, companyID uuid.UUID) ([]Location, error)
	findLocationByIDFn func(ctx context.Context, companyID, id uuid.UUID) (*Location, error)
	updateLocationFn   func(ctx context.Context, loc *Location) error
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) Update(ctx context.Context, company *Company) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, company)
	}
	return nil
}

func (f *fakeCompanyRepo) CreateLocation(ctx context.Context, loc *Location) error {
	if f.createLocationFn != nil {
		return f.createLocationFn(ctx, loc)
	}
	return nil
}

func (f *fakeCompanyRepo) FindLocationsByCompany(ctx context.Context, companyID uuid.UUID) ([]Location, error) {
	if f.findLocationsFn != nil {
		return f.findLocationsFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeCompanyRepo) FindLocationByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Location, error) {
	if f.findLocationByIDFn != nil {
		return f.findLocationByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepo) UpdateLocation(ctx context.Context, loc *Location) error {
	if f.updateLocationFn != nil {
		return f.updateLocationFn(ctx, loc)
	}
	return nil
}

func (f *fakeCompanyRepo) WithTx(tx *gorm.DB) Repository { return f }

func TestUpdate_PartialFields(t *testing.T) {
	comp := &Company{ID: uuid.New(), Name: "Patty Shack", Email: "ops@pattyshack.test", IsActive: true}
	var saved *Company
	repo := &fakeCompanyRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Company, error) {
			return comp, nil
		},
		updateFn: func(ctx context.Context, c *Company) error {
			saved = c
			return nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Update(context.Background(), comp.ID.String(), UpdateCompanyRequest{Name: "  Patty Shack Group  "})
	require.NoError(t, err)

	assert.Equal(t, "Patty Shack Group", resp.Name)
	// Untouched fields survive the patch
	assert.Equal(t, "ops@pattyshack.test", resp.Email)
	assert.True(t, resp.IsActive)
	require.NotNil(t, saved)
	assert.Equal(t, "Patty Shack Group", saved.Name)
}

func TestGetByID_Errors(t *testing.T) {
	svc := NewService(&fakeCompanyRepo{})

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
}

func TestCreateLocation_DefaultsTimezone(t *testing.T) {
	var created *Location
	repo := &fakeCompanyRepo{
		createLocationFn: func(ctx context.Context, loc *Location) error {
			created = loc
			return nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.CreateLocation(context.Background(), uuid.NewString(), CreateLocationRequest{
		Name:    "  Downtown  ",
		Address: "12 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, "Downtown", resp.Name)
	assert.Equal(t, "America/New_York", resp.Timezone)
	assert.True(t, resp.IsActive)
	require.NotNil(t, created)
	assert.Equal(t, "America/New_York", created.Timezone)
}

func TestCreateLocation_RejectsBogusTimezone(t *testing.T) {
	svc := NewService(&fakeCompanyRepo{
		createLocationFn: func(ctx context.Context, loc *Location) error {
			t.Fatal("create should not be reached")
			return nil
		},
	})

	_, err := svc.CreateLocation(context.Background(), uuid.NewString(), CreateLocationRequest{
		Name:     "Airport",
		Timezone: "Mars/Olympus_Mons",
	})
	assert.ErrorIs(t, err, companyerrors.ErrInvalidTimezone)
}

func TestCreateLocation_DuplicateName(t *testing.T) {
	svc := NewService(&fakeCompanyRepo{
		createLocationFn: func(ctx context.Context, loc *Location) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_locations_company_name"}
		},
	})

	_, err := svc.CreateLocation(context.Background(), uuid.NewString(), CreateLocationRequest{
		Name: "Downtown",
	})
	assert.ErrorIs(t, err, companyerrors.ErrLocationNameTaken)
}

func TestUpdateLocation(t *testing.T) {
	companyID := uuid.New()
	loc := &Location{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      "Downtown",
		Timezone:  "America/New_York",
		IsActive:  true,
	}
	repo := &fakeCompanyRepo{
		findLocationByIDFn: func(ctx context.Context, cid, id uuid.UUID) (*Location, error) {
			assert.Equal(t, companyID, cid)
			return loc, nil
		},
	}
	svc := NewService(repo)

	off := false
	resp, err := svc.UpdateLocation(context.Background(), companyID.String(), loc.ID.String(), UpdateLocationRequest{
		Timezone: "America/Chicago",
		IsActive: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, "America/Chicago", resp.Timezone)
	assert.False(t, resp.IsActive)
	assert.Equal(t, "Downtown", resp.Name)

	_, err = svc.UpdateLocation(context.Background(), companyID.String(), loc.ID.String(), UpdateLocationRequest{
		Timezone: "Not/AZone",
	})
	assert.ErrorIs(t, err, companyerrors.ErrInvalidTimezone)
}

func TestGetLocation_ScopedToCompany(t *testing.T) {
	svc := NewService(&fakeCompanyRepo{})

	_, err := svc.GetLocation(context.Background(), uuid.NewString(), "bad")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidLocationID)

	_, err = svc.GetLocation(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, companyerrors.ErrLocationNotFound)
}
