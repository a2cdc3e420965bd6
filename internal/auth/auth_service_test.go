package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	autherrors "github.com/justinnewbold/PattyShack-sub001/internal/auth/errors"
	"github.com/justinnewbold/PattyShack-sub001/internal/domain"
	"github.com/justinnewbold/PattyShack-sub001/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	createFn     func(ctx context.Context, user *User) error
	getByEmailFn func(ctx context.Context, email string) (*User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*User, error)
}

func (f *fakeAuthRepo) Create(ctx context.Context, user *User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRBAC struct {
	loaded []string
}

func (f *fakeRBAC) LoadCompanyPolicy(companyID string) error {
	f.loaded = append(f.loaded, companyID)
	return nil
}
func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) { return true, nil }
func (f *fakeRBAC) ListRoles(companyID string) ([]domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRBAC) GetRole(companyID, id string) (*domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRBAC) CreateRole(companyID string, req domain.CreateRoleRequest) (*domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRBAC) UpdateRole(companyID, id string, req domain.UpdateRoleRequest) (*domain.RoleResponse, error) {
	return nil, nil
}
func (f *fakeRBAC) DeleteRole(companyID, id string) error { return nil }
func (f *fakeRBAC) ListPermissions() ([]domain.PermissionResponse, error) {
	return nil, nil
}

type fakeEmployeeDir struct {
	findFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeDir) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeDir) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeDir) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeDir) FindAllByLocation(ctx context.Context, companyID, locationID string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeDir) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findFn != nil {
		return f.findFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeDir) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}

func seededUser(t *testing.T, password string) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	empID := uuid.New()
	return &User{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		EmployeeID: &empID,
		Email:      "gm@pattyshack.test",
		Name:       "Dana",
		Password:   string(hashed),
		Role:       "GENERAL_MANAGER",
		IsActive:   true,
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := seededUser(t, "hunter22")
	rbacSvc := &fakeRBAC{}
	svc := NewService(&fakeAuthRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			assert.Equal(t, user.Email, email)
			return user, nil
		},
	}, rbacSvc, &fakeEmployeeDir{})

	access, refresh, resp, err := svc.Login(context.Background(), user.Email, "hunter22")
	require.NoError(t, err)

	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, "GENERAL_MANAGER", resp.Role)
	// Policy warm-up happens on every login
	assert.Equal(t, []string{user.CompanyID.String()}, rbacSvc.loaded)

	// Claims carry the tenant and role the middleware reads back out
	token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.CompanyID.String(), claims["company_id"])
	assert.Equal(t, user.EmployeeID.String(), claims["employee_id"])
	assert.Equal(t, "GENERAL_MANAGER", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := seededUser(t, "hunter22")
	svc := NewService(&fakeAuthRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}, &fakeRBAC{}, &fakeEmployeeDir{})

	_, _, _, err := svc.Login(context.Background(), user.Email, "not-it")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	// Unknown email reads the same as a bad password
	svc = NewService(&fakeAuthRepo{}, &fakeRBAC{}, &fakeEmployeeDir{})
	_, _, _, err = svc.Login(context.Background(), "nobody@pattyshack.test", "hunter22")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := seededUser(t, "hunter22")
	svc := NewService(&fakeAuthRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}, &fakeRBAC{}, &fakeEmployeeDir{})

	_, refresh, _, err := svc.Login(context.Background(), user.Email, "hunter22")
	require.NoError(t, err)

	access2, refresh2, resp, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)
	assert.Equal(t, user.Email, resp.Email)
}

func TestRefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(&fakeAuthRepo{}, &fakeRBAC{}, &fakeEmployeeDir{})
	_, _, _, err := svc.RefreshToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestRefreshToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	svc := NewService(&fakeAuthRepo{}, &fakeRBAC{}, &fakeEmployeeDir{})
	_, _, _, err = svc.RefreshToken(context.Background(), signed)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	companyID := uuid.New()
	empID := uuid.New()
	rbacSvc := &fakeRBAC{}
	var created *User
	svc := NewService(&fakeAuthRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}, rbacSvc, &fakeEmployeeDir{
		findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			assert.Equal(t, companyID.String(), cid)
			return &employee.Employee{ID: empID, CompanyID: companyID, FullName: "Riley"}, nil
		},
	})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		CompanyID:  companyID.String(),
		EmployeeID: empID.String(),
		Email:      "riley@pattyshack.test",
		Name:       "Riley",
		Password:   "first-day-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMPLOYEE", resp.Role)
	assert.Equal(t, companyID.String(), resp.CompanyID)
	require.NotNil(t, created)
	// Stored hash must verify and must not be the raw password
	assert.NotEqual(t, "first-day-1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("first-day-1")))
	assert.Equal(t, []string{companyID.String()}, rbacSvc.loaded)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	companyID := uuid.New()
	empID := uuid.New()
	svc := NewService(&fakeAuthRepo{
		createFn: func(ctx context.Context, user *User) error {
			return gorm.ErrDuplicatedKey
		},
	}, &fakeRBAC{}, &fakeEmployeeDir{
		findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: empID, CompanyID: companyID}, nil
		},
	})

	_, err := svc.Register(context.Background(), RegisterRequest{
		CompanyID:  companyID.String(),
		EmployeeID: empID.String(),
		Email:      "taken@pattyshack.test",
		Name:       "Riley",
		Password:   "first-day-1",
	})
	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}
