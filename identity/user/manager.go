package user

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/iamacarpet/go-winusers/identity/flags"
	so "github.com/iamacarpet/go-winusers/shared"
)

// CreatePolicy decides which flags Create adds on its own.
type CreatePolicy int

const (
	// CreateAsIs sends the caller's flags unchanged.
	CreateAsIs CreatePolicy = iota
	// CreateInjectNormalAccount adds Script|NormalAccount when the caller
	// supplied no account type bit.
	CreateInjectNormalAccount
)

func (p CreatePolicy) String() string {
	switch p {
	case CreateAsIs:
		return "as-is"
	case CreateInjectNormalAccount:
		return "inject-normal"
	}
	return "unknown"
}

// ParseCreatePolicy parses the names returned by CreatePolicy.String.
func ParseCreatePolicy(s string) (CreatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "as-is":
		return CreateAsIs, nil
	case "inject-normal":
		return CreateInjectNormalAccount, nil
	}
	return CreateAsIs, errors.Errorf("unknown create policy %q", s)
}

func (p CreatePolicy) apply(f flags.Flags) flags.Flags {
	if p == CreateInjectNormalAccount && f.AccountType() == 0 {
		return f | flags.Script | flags.NormalAccount
	}
	return f
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for operation outcomes. By default nothing
// is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithCreatePolicy sets the flag policy applied by Create.
func WithCreatePolicy(p CreatePolicy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

// WithLogonDefaults replaces the defaults used for zero LogonOptions fields.
// Zero fields of d keep the built-in defaults.
func WithLogonDefaults(d LogonOptions) Option {
	return func(m *Manager) {
		m.logon = d.withDefaults(DefaultLogonOptions)
	}
}

// Manager runs the account lifecycle operations against its adapters. It
// holds no account state and does no locking; concurrent operations on the
// same account race in the adapters.
type Manager struct {
	dir      Directory
	profiles ProfileStore
	sec      SecurityContext

	logger *slog.Logger
	policy CreatePolicy
	logon  LogonOptions
}

// NewManager returns a Manager using the given adapters.
func NewManager(dir Directory, profiles ProfileStore, sec SecurityContext, opts ...Option) *Manager {
	m := &Manager{
		dir:      dir,
		profiles: profiles,
		sec:      sec,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy:   CreateAsIs,
		logon:    DefaultLogonOptions,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// hasCode reports whether err carries one of the given status codes.
func hasCode(err error, codes ...uint32) bool {
	code, ok := so.StatusCode(err)
	if !ok {
		return false
	}
	code = so.Win32Code(code)
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}

// Get returns the account called name, or nil if there is none.
func (m *Manager) Get(name string) (*so.LocalAccount, error) {
	if err := validateName("Get", name); err != nil {
		return nil, err
	}
	account, err := m.dir.Lookup(name)
	if hasCode(err, so.NERR_UserNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "error getting account %q", name)
	}
	return &account, nil
}

// List returns every normal local account.
func (m *Manager) List() ([]so.LocalAccount, error) {
	names, err := m.dir.Enumerate()
	if err != nil {
		return nil, errors.Wrap(err, "error listing accounts")
	}
	accounts := make([]so.LocalAccount, 0, len(names))
	for _, name := range names {
		account, err := m.dir.Lookup(name)
		if hasCode(err, so.NERR_UserNotFound) {
			// Deleted since enumeration.
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "error getting account %q", name)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Create adds a new account. It returns false, and no error, if an account
// with that name already exists.
func (m *Manager) Create(name, password string, f flags.Flags) (bool, error) {
	if err := validateNewName("Create", name); err != nil {
		return false, err
	}
	if err := validateText("Create", "password", password); err != nil {
		return false, err
	}
	if err := validateFlags("Create", "flags", f); err != nil {
		return false, err
	}
	f = m.policy.apply(f)

	err := m.dir.Add(name, password, f)
	if hasCode(err, so.NERR_UserExists) {
		m.logger.Debug("account already exists", "name", name)
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "error creating account %q", name)
	}
	m.logger.Debug("account created", "name", name, "flags", f.String())
	return true, nil
}

// Delete removes an account. It returns false, and no error, if there was
// no such account.
func (m *Manager) Delete(name string) (bool, error) {
	if err := validateName("Delete", name); err != nil {
		return false, err
	}
	err := m.dir.Remove(name)
	if hasCode(err, so.NERR_UserNotFound) {
		m.logger.Debug("account already absent", "name", name)
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "error deleting account %q", name)
	}
	m.logger.Debug("account deleted", "name", name)
	return true, nil
}

// Update applies req to the account. An empty request changes nothing.
func (m *Manager) Update(name string, req so.UpdateRequest) error {
	if err := validateName("Update", name); err != nil {
		return err
	}
	if err := validateUpdate("Update", req); err != nil {
		return err
	}
	if req.Empty() {
		return nil
	}
	if err := m.dir.Update(name, req); err != nil {
		return errors.Wrapf(err, "error updating account %q", name)
	}
	m.logger.Debug("account updated", "name", name)
	return nil
}

// ChangePassword replaces the account's password. The current password must
// be supplied; this is not an administrative reset.
func (m *Manager) ChangePassword(name, oldPassword, newPassword string) error {
	if err := validateName("ChangePassword", name); err != nil {
		return err
	}
	if err := validateText("ChangePassword", "old password", oldPassword); err != nil {
		return err
	}
	if err := validateText("ChangePassword", "new password", newPassword); err != nil {
		return err
	}
	if err := m.dir.ChangePassword(name, oldPassword, newPassword); err != nil {
		return errors.Wrapf(err, "error changing password of account %q", name)
	}
	m.logger.Debug("password changed", "name", name)
	return nil
}

// sid resolves the SID of name. ok is false when the account does not exist.
func (m *Manager) sid(op, name string) (sid string, ok bool, err error) {
	if err := validateName(op, name); err != nil {
		return "", false, err
	}
	account, err := m.dir.Lookup(name)
	if hasCode(err, so.NERR_UserNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrapf(err, "error resolving SID of account %q", name)
	}
	return account.SID, true, nil
}

// CreateProfile creates the profile directory of the account and returns
// its path. created is false, with no error, if the account already has a
// profile or does not exist.
func (m *Manager) CreateProfile(name string) (path string, created bool, err error) {
	sid, ok, err := m.sid("CreateProfile", name)
	if err != nil || !ok {
		return "", false, err
	}
	path, err = m.profiles.Create(sid, name)
	if hasCode(err, so.ERROR_ALREADY_EXISTS) {
		m.logger.Debug("profile already exists", "name", name, "sid", sid)
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrapf(err, "error creating profile of account %q", name)
	}
	m.logger.Debug("profile created", "name", name, "sid", sid, "path", path)
	return path, true, nil
}

// DeleteProfile removes the profile directory of the account. It returns
// false, with no error, if there was no profile or no account. The SID is
// resolved through the account, so run this before Delete.
func (m *Manager) DeleteProfile(name string) (bool, error) {
	sid, ok, err := m.sid("DeleteProfile", name)
	if err != nil || !ok {
		return false, err
	}
	err = m.profiles.Delete(sid)
	if hasCode(err, so.ERROR_FILE_NOT_FOUND) {
		m.logger.Debug("profile already absent", "name", name, "sid", sid)
		return false, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "error deleting profile of account %q", name)
	}
	m.logger.Debug("profile deleted", "name", name, "sid", sid)
	return true, nil
}

// ProfilePath returns the profile directory of the account without logging
// on. ok is false when there is no profile or no account.
func (m *Manager) ProfilePath(name string) (path string, ok bool, err error) {
	sid, ok, err := m.sid("ProfilePath", name)
	if err != nil || !ok {
		return "", false, err
	}
	path, err = m.profiles.Lookup(sid)
	if hasCode(err, so.ERROR_FILE_NOT_FOUND) {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrapf(err, "error looking up profile of account %q", name)
	}
	return path, true, nil
}

// Authenticate logs the account on and returns the resulting security
// context. The caller owns the handle and must close it. Accounts without a
// password cannot use a network logon; the OS refuses with
// ERROR_ACCOUNT_RESTRICTION.
func (m *Manager) Authenticate(name, password string, opts LogonOptions) (*Handle, error) {
	if err := validateName("Authenticate", name); err != nil {
		return nil, err
	}
	if err := validateText("Authenticate", "password", password); err != nil {
		return nil, err
	}
	opts = opts.withDefaults(m.logon)
	if err := validateLogon("Authenticate", opts); err != nil {
		return nil, err
	}
	token, err := m.sec.Logon(name, opts.Domain, password, opts.Type, opts.Provider)
	if err != nil {
		return nil, errors.Wrapf(err, "error authenticating account %q", name)
	}
	m.logger.Debug(
		"account authenticated",
		"name", name,
		"domain", opts.Domain,
		"logon_type", opts.Type.String(),
	)
	return newHandle(token, m.sec.Close), nil
}

// Impersonate makes the calling thread act as the handle's security
// context until RevertToSelf.
func (m *Manager) Impersonate(h *Handle) error {
	token, err := validateHandle("Impersonate", h)
	if err != nil {
		return err
	}
	return errors.Wrap(m.sec.Impersonate(token), "error impersonating")
}

// RevertToSelf ends any impersonation on the calling thread.
func (m *Manager) RevertToSelf() error {
	return errors.Wrap(m.sec.RevertToSelf(), "error reverting to self")
}

// ProfileDirectory returns the profile directory of the handle's account.
func (m *Manager) ProfileDirectory(h *Handle) (string, error) {
	token, err := validateHandle("ProfileDirectory", h)
	if err != nil {
		return "", err
	}
	dir, err := m.sec.ProfileDirectory(token)
	if err != nil {
		return "", errors.Wrap(err, "error getting profile directory")
	}
	return dir, nil
}

// CloseHandle releases h, and only h. It does not touch impersonation.
func (m *Manager) CloseHandle(h *Handle) error {
	if h == nil {
		return invalid("CloseHandle", "handle", "must not be nil")
	}
	return errors.Wrap(h.Close(), "error closing handle")
}
