// Package testutil provides in-memory account, profile and logon adapters
// that reproduce the status codes and side effects of the Windows APIs the
// manager is tested against.
package testutil

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/iamacarpet/go-winusers/identity/flags"
	"github.com/iamacarpet/go-winusers/identity/user"
	so "github.com/iamacarpet/go-winusers/shared"
)

const (
	errorInvalidHandle   uint32 = 6
	errorAccountDisabled uint32 = 1331
)

type record struct {
	account  so.LocalAccount
	password string
}

// System is the shared state behind the three adapters.
type System struct {
	mu       sync.Mutex
	accounts map[string]*record
	profiles map[string]string
	tokens   map[uintptr]string
	nextRID  int
	nextTok  uintptr

	// ProfilesRoot is the directory new profiles are created under.
	ProfilesRoot string
	// Impersonating is the account the fake thread currently impersonates.
	Impersonating string
	// Reverts counts RevertToSelf calls.
	Reverts int
	// Closed counts successfully closed tokens.
	Closed int
}

// NewSystem returns an empty System.
func NewSystem() *System {
	return &System{
		accounts:     map[string]*record{},
		profiles:     map[string]string{},
		tokens:       map[uintptr]string{},
		nextRID:      1001,
		nextTok:      0x100,
		ProfilesRoot: `C:\Users`,
	}
}

// Directory returns the account directory view of s.
func (s *System) Directory() user.Directory { return (*directory)(s) }

// Profiles returns the profile store view of s.
func (s *System) Profiles() user.ProfileStore { return (*profiles)(s) }

// Security returns the security context view of s.
func (s *System) Security() user.SecurityContext { return (*security)(s) }

// Manager wires a user.Manager to s.
func (s *System) Manager(opts ...user.Option) *user.Manager {
	return user.NewManager(s.Directory(), s.Profiles(), s.Security(), opts...)
}

// OpenTokens returns the number of tokens not yet closed.
func (s *System) OpenTokens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// required applies the bits the SAM forces onto every stored account.
func required(f flags.Flags) flags.Flags {
	f |= flags.Script
	if f.AccountType() == 0 {
		f |= flags.NormalAccount
	}
	return f
}

func key(name string) string {
	return strings.ToLower(name)
}

type directory System

func (d *directory) Lookup(name string) (so.LocalAccount, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.accounts[key(name)]
	if !ok {
		return so.LocalAccount{}, so.NewOperationError("NetUserGetInfo", so.NERR_UserNotFound)
	}
	return r.account, nil
}

func (d *directory) Enumerate() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.accounts))
	for _, r := range d.accounts {
		names = append(names, r.account.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *directory) Add(name, password string, f flags.Flags) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.accounts[key(name)]; ok {
		return so.NewOperationError("NetUserAdd", so.NERR_UserExists)
	}
	d.accounts[key(name)] = &record{
		account: so.LocalAccount{
			Name:  name,
			Flags: required(f),
			SID:   fmt.Sprintf("S-1-5-21-1004336348-1177238915-682003330-%d", d.nextRID),
		},
		password: password,
	}
	d.nextRID++
	return nil
}

func (d *directory) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.accounts[key(name)]; !ok {
		return so.NewOperationError("NetUserDel", so.NERR_UserNotFound)
	}
	delete(d.accounts, key(name))
	return nil
}

func (d *directory) Update(name string, req so.UpdateRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.accounts[key(name)]
	if !ok {
		return so.NewOperationError("NetUserSetInfo", so.NERR_UserNotFound)
	}
	if req.FullName != nil {
		r.account.FullName = *req.FullName
	}
	if req.Comment != nil {
		r.account.Comment = *req.Comment
	}
	f := r.account.Flags
	if req.Flags != nil {
		f |= *req.Flags
	}
	if req.ClearFlags != nil {
		f &^= *req.ClearFlags
	}
	r.account.Flags = required(f)
	return nil
}

func (d *directory) ChangePassword(name, oldPassword, newPassword string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.accounts[key(name)]
	if !ok {
		return so.NewOperationError("NetUserChangePassword", so.NERR_UserNotFound)
	}
	if r.password != oldPassword {
		return so.NewOperationError("NetUserChangePassword", so.ERROR_INVALID_PASSWORD)
	}
	r.password = newPassword
	return nil
}

type profiles System

func (p *profiles) Create(sid, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.profiles[sid]; ok {
		// CreateProfile reports HRESULT_FROM_WIN32(ERROR_ALREADY_EXISTS).
		return "", so.NewOperationError("CreateProfile", 0x800700B7)
	}
	path := p.ProfilesRoot + `\` + name
	p.profiles[sid] = path
	return path, nil
}

func (p *profiles) Delete(sid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.profiles[sid]; !ok {
		return so.NewOperationError("DeleteProfileW", so.ERROR_FILE_NOT_FOUND)
	}
	delete(p.profiles, sid)
	return nil
}

func (p *profiles) Lookup(sid string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	path, ok := p.profiles[sid]
	if !ok {
		return "", so.NewOperationError("Win32_UserProfile", so.ERROR_FILE_NOT_FOUND)
	}
	return path, nil
}

type security System

func (s *security) Logon(name, domain, password string, logonType user.LogonType, provider user.LogonProvider) (uintptr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.accounts[key(name)]
	if !ok || r.password != password {
		return 0, so.NewOperationError("LogonUserW", so.ERROR_LOGON_FAILURE)
	}
	if r.account.Flags.Has(flags.AccountDisable) {
		return 0, so.NewOperationError("LogonUserW", errorAccountDisabled)
	}
	if password == "" && logonType == user.LogonNetwork {
		return 0, so.NewOperationError("LogonUserW", so.ERROR_ACCOUNT_RESTRICTION)
	}
	tok := s.nextTok
	s.nextTok += 4
	s.tokens[tok] = r.account.Name
	return tok, nil
}

func (s *security) Impersonate(token uintptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.tokens[token]
	if !ok {
		return so.NewOperationError("ImpersonateLoggedOnUser", errorInvalidHandle)
	}
	s.Impersonating = name
	return nil
}

func (s *security) RevertToSelf() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Impersonating = ""
	s.Reverts++
	return nil
}

func (s *security) ProfileDirectory(token uintptr) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.tokens[token]
	if !ok {
		return "", so.NewOperationError("GetUserProfileDirectoryW", errorInvalidHandle)
	}
	r, ok := s.accounts[key(name)]
	if !ok {
		return "", so.NewOperationError("GetUserProfileDirectoryW", so.ERROR_FILE_NOT_FOUND)
	}
	path, ok := s.profiles[r.account.SID]
	if !ok {
		return "", so.NewOperationError("GetUserProfileDirectoryW", so.ERROR_FILE_NOT_FOUND)
	}
	return path, nil
}

func (s *security) Close(token uintptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token]; !ok {
		return so.NewOperationError("CloseHandle", errorInvalidHandle)
	}
	delete(s.tokens, token)
	s.Closed++
	return nil
}
