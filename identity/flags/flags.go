// Package flags models the usri*_flags bit set stored with every local
// account (the UF_* values from lmaccess.h).
package flags

import (
	"fmt"
	"strconv"
	"strings"
)

// Flags is the account attribute bit set.
type Flags uint32

const (
	Script                       Flags = 0x0001
	AccountDisable               Flags = 0x0002
	HomeDirRequired              Flags = 0x0008
	Lockout                      Flags = 0x0010
	PasswdNotReqd                Flags = 0x0020
	PasswdCantChange             Flags = 0x0040
	EncryptedTextPasswordAllowed Flags = 0x0080

	// Account type bits. Exactly one of these is set on a valid account.
	TempDuplicateAccount    Flags = 0x0100
	NormalAccount           Flags = 0x0200
	InterdomainTrustAccount Flags = 0x0800
	WorkstationTrustAccount Flags = 0x1000
	ServerTrustAccount      Flags = 0x2000

	DontExpirePasswd                   Flags = 0x10000
	MnsLogonAccount                    Flags = 0x20000
	SmartcardRequired                  Flags = 0x40000
	TrustedForDelegation               Flags = 0x80000
	NotDelegated                       Flags = 0x100000
	UseDesKeyOnly                      Flags = 0x200000
	DontRequirePreauth                 Flags = 0x400000
	PasswordExpired                    Flags = 0x800000
	TrustedToAuthenticateForDelegation Flags = 0x1000000
	NoAuthDataRequired                 Flags = 0x2000000
	PartialSecretsAccount              Flags = 0x4000000
	UseAesKeys                         Flags = 0x8000000
)

const (
	MachineAccountMask = InterdomainTrustAccount |
		WorkstationTrustAccount |
		ServerTrustAccount

	AccountTypeMask = TempDuplicateAccount |
		NormalAccount |
		MachineAccountMask

	// SettableBits are the bits a caller may request on create or update.
	SettableBits = Script |
		AccountDisable |
		Lockout |
		HomeDirRequired |
		PasswdNotReqd |
		PasswdCantChange |
		AccountTypeMask |
		DontExpirePasswd |
		MnsLogonAccount |
		EncryptedTextPasswordAllowed |
		SmartcardRequired |
		TrustedForDelegation |
		NotDelegated |
		UseDesKeyOnly |
		DontRequirePreauth |
		PasswordExpired |
		TrustedToAuthenticateForDelegation |
		NoAuthDataRequired |
		UseAesKeys |
		PartialSecretsAccount
)

type entry struct {
	bits Flags
	name string
}

// catalog must stay sorted by ascending value; Format depends on it.
var catalog = []entry{
	{Script, "SCRIPT"},
	{AccountDisable, "ACCOUNTDISABLE"},
	{HomeDirRequired, "HOMEDIR_REQUIRED"},
	{Lockout, "LOCKOUT"},
	{PasswdNotReqd, "PASSWD_NOTREQD"},
	{PasswdCantChange, "PASSWD_CANT_CHANGE"},
	{EncryptedTextPasswordAllowed, "ENCRYPTED_TEXT_PASSWORD_ALLOWED"},
	{TempDuplicateAccount, "TEMP_DUPLICATE_ACCOUNT"},
	{NormalAccount, "NORMAL_ACCOUNT"},
	{InterdomainTrustAccount, "INTERDOMAIN_TRUST_ACCOUNT"},
	{WorkstationTrustAccount, "WORKSTATION_TRUST_ACCOUNT"},
	{ServerTrustAccount, "SERVER_TRUST_ACCOUNT"},
	{MachineAccountMask, "MACHINE_ACCOUNT_MASK"},
	{AccountTypeMask, "ACCOUNT_TYPE_MASK"},
	{DontExpirePasswd, "DONT_EXPIRE_PASSWD"},
	{MnsLogonAccount, "MNS_LOGON_ACCOUNT"},
	{SmartcardRequired, "SMARTCARD_REQUIRED"},
	{TrustedForDelegation, "TRUSTED_FOR_DELEGATION"},
	{NotDelegated, "NOT_DELEGATED"},
	{UseDesKeyOnly, "USE_DES_KEY_ONLY"},
	{DontRequirePreauth, "DONT_REQUIRE_PREAUTH"},
	{PasswordExpired, "PASSWORD_EXPIRED"},
	{TrustedToAuthenticateForDelegation, "TRUSTED_TO_AUTHENTICATE_FOR_DELEGATION"},
	{NoAuthDataRequired, "NO_AUTH_DATA_REQUIRED"},
	{PartialSecretsAccount, "PARTIAL_SECRETS_ACCOUNT"},
	{UseAesKeys, "USE_AES_KEYS"},
	{SettableBits, "SETTABLE_BITS"},
}

// Names decomposes f into catalog names. Entries are matched greedily from
// the lowest value up and their bits removed from the remainder, so the
// result is always in ascending bit order. Bits that match no entry are
// dropped.
func (f Flags) Names() []string {
	var names []string
	for _, e := range catalog {
		if f&e.bits != e.bits {
			continue
		}
		names = append(names, e.name)
		f &^= e.bits
	}
	return names
}

// Format renders f for display, e.g. "NORMAL_ACCOUNT | DONT_EXPIRE_PASSWD".
// A value with no recognised bits renders as "0".
func Format(f Flags) string {
	names := f.Names()
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, " | ")
}

func (f Flags) String() string {
	return Format(f)
}

// Has reports whether every bit of mask is set in f.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// AccountType returns only the account type bits of f.
func (f Flags) AccountType() Flags {
	return f & AccountTypeMask
}

// Validate returns an error naming the first bits of f that fall outside
// SettableBits.
func Validate(f Flags) error {
	if extra := f &^ SettableBits; extra != 0 {
		return fmt.Errorf("bits 0x%X are not settable", uint32(extra))
	}
	return nil
}

// Parse reads flags written as names joined by "|" or ",", the form Format
// produces. Names may carry the UF_ prefix and are case-insensitive; a token
// may also be a number in any base strconv accepts.
func Parse(s string) (Flags, error) {
	var f Flags
	for _, token := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		token = strings.ToUpper(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if n, err := strconv.ParseUint(token, 0, 32); err == nil {
			f |= Flags(n)
			continue
		}
		bits, ok := byName[strings.TrimPrefix(token, "UF_")]
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", token)
		}
		f |= bits
	}
	return f, nil
}

var byName = func() map[string]Flags {
	m := make(map[string]Flags, len(catalog))
	for _, e := range catalog {
		m[e.name] = e.bits
	}
	return m
}()
