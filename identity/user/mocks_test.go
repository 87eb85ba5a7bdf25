package user_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/iamacarpet/go-winusers/identity/flags"
	"github.com/iamacarpet/go-winusers/identity/user"
	so "github.com/iamacarpet/go-winusers/shared"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Lookup(name string) (so.LocalAccount, error) {
	args := m.Called(name)
	return args.Get(0).(so.LocalAccount), args.Error(1)
}

func (m *mockDirectory) Enumerate() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockDirectory) Add(name, password string, f flags.Flags) error {
	return m.Called(name, password, f).Error(0)
}

func (m *mockDirectory) Remove(name string) error {
	return m.Called(name).Error(0)
}

func (m *mockDirectory) Update(name string, req so.UpdateRequest) error {
	return m.Called(name, req).Error(0)
}

func (m *mockDirectory) ChangePassword(name, oldPassword, newPassword string) error {
	return m.Called(name, oldPassword, newPassword).Error(0)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) Create(sid, name string) (string, error) {
	args := m.Called(sid, name)
	return args.String(0), args.Error(1)
}

func (m *mockProfiles) Delete(sid string) error {
	return m.Called(sid).Error(0)
}

func (m *mockProfiles) Lookup(sid string) (string, error) {
	args := m.Called(sid)
	return args.String(0), args.Error(1)
}

type mockSecurity struct {
	mock.Mock
}

func (m *mockSecurity) Logon(
	name string,
	domain string,
	password string,
	logonType user.LogonType,
	provider user.LogonProvider,
) (uintptr, error) {
	args := m.Called(name, domain, password, logonType, provider)
	return args.Get(0).(uintptr), args.Error(1)
}

func (m *mockSecurity) Impersonate(token uintptr) error {
	return m.Called(token).Error(0)
}

func (m *mockSecurity) RevertToSelf() error {
	return m.Called().Error(0)
}

func (m *mockSecurity) ProfileDirectory(token uintptr) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *mockSecurity) Close(token uintptr) error {
	return m.Called(token).Error(0)
}
