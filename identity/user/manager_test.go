package user_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamacarpet/go-winusers/identity/flags"
	"github.com/iamacarpet/go-winusers/identity/user"
	"github.com/iamacarpet/go-winusers/internal/testutil"
	so "github.com/iamacarpet/go-winusers/shared"
)

const (
	testName     = "autologon"
	testPassword = ""
)

func TestCreateIsIdempotent(t *testing.T) {
	m := testutil.NewSystem().Manager()

	created, err := m.Create(testName, testPassword, flags.DontExpirePasswd)
	require.NoError(t, err)
	require.True(t, created)

	created, err = m.Create(testName, testPassword, flags.DontExpirePasswd|flags.AccountDisable)
	require.NoError(t, err)
	require.False(t, created)

	account, err := m.Get(testName)
	require.NoError(t, err)
	require.NotNil(t, account)
	// The second call must not have changed anything.
	require.False(t, account.Flags.Has(flags.AccountDisable))
	require.True(t, account.Flags.Has(flags.DontExpirePasswd))
}

func TestDeleteIsIdempotent(t *testing.T) {
	m := testutil.NewSystem().Manager()

	deleted, err := m.Delete("nobody")
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = m.Create(testName, testPassword, 0)
	require.NoError(t, err)

	deleted, err = m.Delete(testName)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = m.Delete(testName)
	require.NoError(t, err)
	require.False(t, deleted)

	account, err := m.Get(testName)
	require.NoError(t, err)
	require.Nil(t, account)
}

func TestGetRoundTrip(t *testing.T) {
	requested := flags.DontExpirePasswd | flags.PasswdCantChange
	m := testutil.NewSystem().Manager()

	_, err := m.Create(testName, "Pa$$w0rd!", requested)
	require.NoError(t, err)

	account, err := m.Get(testName)
	require.NoError(t, err)
	require.Equal(t, testName, account.Name)
	require.NotEmpty(t, account.SID)
	// The directory adds SCRIPT and NORMAL_ACCOUNT on its own.
	forced := flags.Script | flags.NormalAccount
	require.Equal(
		t,
		requested&flags.SettableBits,
		account.Flags&flags.SettableBits&^forced,
	)
}

func TestCreatePolicy(t *testing.T) {
	testCases := []struct {
		name     string
		policy   user.CreatePolicy
		flags    flags.Flags
		expected flags.Flags
	}{
		{
			name:     "as-is",
			policy:   user.CreateAsIs,
			flags:    flags.DontExpirePasswd,
			expected: flags.DontExpirePasswd,
		},
		{
			name:     "inject normal account",
			policy:   user.CreateInjectNormalAccount,
			flags:    flags.DontExpirePasswd,
			expected: flags.Script | flags.NormalAccount | flags.DontExpirePasswd,
		},
		{
			name:     "inject keeps explicit account type",
			policy:   user.CreateInjectNormalAccount,
			flags:    flags.WorkstationTrustAccount,
			expected: flags.WorkstationTrustAccount,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			dir := &mockDirectory{}
			dir.On("Add", testName, testPassword, testCase.expected).Return(nil)
			m := user.NewManager(dir, &mockProfiles{}, &mockSecurity{}, user.WithCreatePolicy(testCase.policy))
			created, err := m.Create(testName, testPassword, testCase.flags)
			require.NoError(t, err)
			require.True(t, created)
			dir.AssertExpectations(t)
		})
	}
}

func TestParseCreatePolicy(t *testing.T) {
	p, err := user.ParseCreatePolicy("inject-normal")
	require.NoError(t, err)
	require.Equal(t, user.CreateInjectNormalAccount, p)
	require.Equal(t, "inject-normal", p.String())

	p, err = user.ParseCreatePolicy("")
	require.NoError(t, err)
	require.Equal(t, user.CreateAsIs, p)

	_, err = user.ParseCreatePolicy("sometimes")
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	sys := testutil.NewSystem()
	m := sys.Manager()
	_, err := m.Create(testName, testPassword, flags.DontExpirePasswd)
	require.NoError(t, err)
	before, err := m.Get(testName)
	require.NoError(t, err)

	t.Run("empty request changes nothing", func(t *testing.T) {
		require.NoError(t, m.Update(testName, so.UpdateRequest{}))
		after, err := m.Get(testName)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("full name and flags", func(t *testing.T) {
		fullName := "The Test User"
		f := flags.DontExpirePasswd
		require.NoError(t, m.Update(testName, so.UpdateRequest{FullName: &fullName, Flags: &f}))
		after, err := m.Get(testName)
		require.NoError(t, err)
		expected := *before
		expected.FullName = fullName
		expected.Flags = f | flags.NormalAccount | flags.Script
		require.Equal(t, &expected, after)
	})

	t.Run("flags are merged", func(t *testing.T) {
		f := flags.PasswdCantChange
		require.NoError(t, m.Update(testName, so.UpdateRequest{Flags: &f}))
		after, err := m.Get(testName)
		require.NoError(t, err)
		require.True(t, after.Flags.Has(flags.PasswdCantChange|flags.DontExpirePasswd|flags.NormalAccount))
	})

	t.Run("clear flags", func(t *testing.T) {
		clearBits := flags.PasswdCantChange
		comment := "managed"
		require.NoError(t, m.Update(testName, so.UpdateRequest{Comment: &comment, ClearFlags: &clearBits}))
		after, err := m.Get(testName)
		require.NoError(t, err)
		require.False(t, after.Flags.Has(flags.PasswdCantChange))
		require.True(t, after.Flags.Has(flags.DontExpirePasswd))
		require.Equal(t, "managed", after.Comment)
	})

	t.Run("clearing the account type is rejected", func(t *testing.T) {
		clearBits := flags.NormalAccount
		err := m.Update(testName, so.UpdateRequest{ClearFlags: &clearBits})
		require.True(t, errors.Is(err, so.ErrInvalidArgument))
	})

	t.Run("missing account", func(t *testing.T) {
		fullName := "x"
		err := m.Update("nobody", so.UpdateRequest{FullName: &fullName})
		require.True(t, errors.Is(err, so.ErrNotFound))
	})
}

func TestEmptyUpdateSkipsDirectory(t *testing.T) {
	dir := &mockDirectory{}
	m := user.NewManager(dir, &mockProfiles{}, &mockSecurity{})
	require.NoError(t, m.Update(testName, so.UpdateRequest{}))
	dir.AssertNotCalled(t, "Update")
}

func TestChangePassword(t *testing.T) {
	m := testutil.NewSystem().Manager()
	_, err := m.Create(testName, testPassword, 0)
	require.NoError(t, err)

	err = m.ChangePassword(testName, "wrong", "Pa$$w0rd!")
	require.Error(t, err)
	require.True(t, errors.Is(err, so.ErrInvalidPassword))
	code, ok := so.StatusCode(err)
	require.True(t, ok)
	require.Equal(t, so.ERROR_INVALID_PASSWORD, code)

	require.NoError(t, m.ChangePassword(testName, testPassword, "Pa$$w0rd!"))
	require.NoError(t, m.ChangePassword(testName, "Pa$$w0rd!", "N3w-Pa$$"))
}

func TestProfiles(t *testing.T) {
	m := testutil.NewSystem().Manager()
	_, err := m.Create(testName, testPassword, 0)
	require.NoError(t, err)

	_, ok, err := m.ProfilePath(testName)
	require.NoError(t, err)
	require.False(t, ok)

	path, created, err := m.CreateProfile(testName)
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, path)

	again, created, err := m.CreateProfile(testName)
	require.NoError(t, err)
	require.False(t, created)
	require.Empty(t, again)

	found, ok, err := m.ProfilePath(testName)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, path, found)

	deleted, err := m.DeleteProfile(testName)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = m.DeleteProfile(testName)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestProfilesOfMissingAccount(t *testing.T) {
	m := testutil.NewSystem().Manager()

	path, created, err := m.CreateProfile("nobody")
	require.NoError(t, err)
	require.False(t, created)
	require.Empty(t, path)

	deleted, err := m.DeleteProfile("nobody")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestList(t *testing.T) {
	m := testutil.NewSystem().Manager()
	for _, name := range []string{"bravo", "alpha"} {
		_, err := m.Create(name, "Pa$$w0rd!", 0)
		require.NoError(t, err)
	}
	accounts, err := m.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alpha", accounts[0].Name)
	assert.Equal(t, "bravo", accounts[1].Name)
}

func TestListSkipsVanishedAccounts(t *testing.T) {
	dir := &mockDirectory{}
	dir.On("Enumerate").Return([]string{"gone", "kept"}, nil)
	dir.On("Lookup", "gone").Return(so.LocalAccount{}, so.NewOperationError("NetUserGetInfo", so.NERR_UserNotFound))
	dir.On("Lookup", "kept").Return(so.LocalAccount{Name: "kept"}, nil)
	m := user.NewManager(dir, &mockProfiles{}, &mockSecurity{})
	accounts, err := m.List()
	require.NoError(t, err)
	require.Equal(t, []so.LocalAccount{{Name: "kept"}}, accounts)
}

func TestOperationFailuresPropagate(t *testing.T) {
	denied := so.NewOperationError("NetUserAdd", so.ERROR_ACCESS_DENIED)

	dir := &mockDirectory{}
	dir.On("Add", testName, testPassword, flags.Flags(0)).Return(denied)
	dir.On("Remove", testName).Return(so.NewOperationError("NetUserDel", so.ERROR_ACCESS_DENIED))
	dir.On("Lookup", testName).Return(so.LocalAccount{}, so.NewOperationError("NetUserGetInfo", 53))
	m := user.NewManager(dir, &mockProfiles{}, &mockSecurity{})

	_, err := m.Create(testName, testPassword, 0)
	require.True(t, errors.Is(err, so.ErrAccessDenied))
	var opErr *so.OperationError
	require.True(t, errors.As(err, &opErr))
	require.Equal(t, "NetUserAdd", opErr.Op)
	require.Contains(t, err.Error(), "error creating account")

	_, err = m.Delete(testName)
	require.True(t, errors.Is(err, so.ErrAccessDenied))

	account, err := m.Get(testName)
	require.Nil(t, account)
	code, ok := so.StatusCode(err)
	require.True(t, ok)
	require.Equal(t, uint32(53), code)

	_, _, err = m.CreateProfile(testName)
	require.Error(t, err)
	_, err = m.DeleteProfile(testName)
	require.Error(t, err)
}

func TestProfileFailuresPropagate(t *testing.T) {
	dir := &mockDirectory{}
	dir.On("Lookup", testName).Return(so.LocalAccount{Name: testName, SID: "S-1-5-21-1"}, nil)
	profiles := &mockProfiles{}
	profiles.On("Create", "S-1-5-21-1", testName).Return("", so.NewOperationError("CreateProfile", 0x80070005))
	profiles.On("Delete", "S-1-5-21-1").Return(so.NewOperationError("DeleteProfileW", 32))
	m := user.NewManager(dir, profiles, &mockSecurity{})

	_, _, err := m.CreateProfile(testName)
	require.True(t, errors.Is(err, so.ErrAccessDenied))

	_, err = m.DeleteProfile(testName)
	code, ok := so.StatusCode(err)
	require.True(t, ok)
	require.Equal(t, uint32(32), code)
}

func TestNamesThatCannotExistAreAbsent(t *testing.T) {
	m := testutil.NewSystem().Manager()
	for _, name := range []string{"abcdefghijklmnopqrstu", "a/b", "name.", ".."} {
		t.Run(name, func(t *testing.T) {
			account, err := m.Get(name)
			require.NoError(t, err)
			require.Nil(t, account)

			deleted, err := m.Delete(name)
			require.NoError(t, err)
			require.False(t, deleted)

			path, created, err := m.CreateProfile(name)
			require.NoError(t, err)
			require.False(t, created)
			require.Empty(t, path)

			deleted, err = m.DeleteProfile(name)
			require.NoError(t, err)
			require.False(t, deleted)
		})
	}
}

func TestValidation(t *testing.T) {
	badFlags := flags.DontExpirePasswd | 0x0004
	longName := "abcdefghijklmnopqrstu"
	testCases := []struct {
		name string
		call func(m *user.Manager) error
	}{
		{"empty name", func(m *user.Manager) error {
			_, err := m.Get("")
			return err
		}},
		{"name with NUL", func(m *user.Manager) error {
			_, err := m.Delete("bad\x00name")
			return err
		}},
		{"name too long", func(m *user.Manager) error {
			_, err := m.Create(longName, "", 0)
			return err
		}},
		{"name with forbidden character", func(m *user.Manager) error {
			_, err := m.Create(`dom\user`, "", 0)
			return err
		}},
		{"name of periods", func(m *user.Manager) error {
			_, err := m.Create("..", "", 0)
			return err
		}},
		{"name ending in a period", func(m *user.Manager) error {
			_, err := m.Create("name.", "", 0)
			return err
		}},
		{"password with NUL", func(m *user.Manager) error {
			_, err := m.Create(testName, "pa\x00ss", 0)
			return err
		}},
		{"unsettable create flags", func(m *user.Manager) error {
			_, err := m.Create(testName, "", badFlags)
			return err
		}},
		{"unsettable update flags", func(m *user.Manager) error {
			return m.Update(testName, so.UpdateRequest{Flags: &badFlags})
		}},
		{"full name with NUL", func(m *user.Manager) error {
			fullName := "a\x00b"
			return m.Update(testName, so.UpdateRequest{FullName: &fullName})
		}},
		{"change password with NUL", func(m *user.Manager) error {
			return m.ChangePassword(testName, "", "a\x00b")
		}},
		{"profile of empty name", func(m *user.Manager) error {
			_, _, err := m.CreateProfile("")
			return err
		}},
		{"unknown logon type", func(m *user.Manager) error {
			_, err := m.Authenticate(testName, "x", user.LogonOptions{Type: 6})
			return err
		}},
		{"unknown logon provider", func(m *user.Manager) error {
			_, err := m.Authenticate(testName, "x", user.LogonOptions{Provider: 9})
			return err
		}},
		{"nil handle", func(m *user.Manager) error {
			return m.Impersonate(nil)
		}},
		{"close nil handle", func(m *user.Manager) error {
			return m.CloseHandle(nil)
		}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			// Mocks without expectations panic on any adapter call.
			dir := &mockDirectory{}
			profiles := &mockProfiles{}
			sec := &mockSecurity{}
			m := user.NewManager(dir, profiles, sec)
			err := testCase.call(m)
			require.Error(t, err)
			var verr *so.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.True(t, errors.Is(err, so.ErrInvalidArgument))
		})
	}
}
