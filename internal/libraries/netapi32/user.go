//go:build windows && amd64

package netapi32

var (
	NetUserEnum           = modNetapi32.NewProc("NetUserEnum")
	NetUserAdd            = modNetapi32.NewProc("NetUserAdd")
	NetUserDel            = modNetapi32.NewProc("NetUserDel")
	NetUserGetInfo        = modNetapi32.NewProc("NetUserGetInfo")
	NetUserSetInfo        = modNetapi32.NewProc("NetUserSetInfo")
	NetUserChangePassword = modNetapi32.NewProc("NetUserChangePassword")
)

const (
	NERR_Success = 0

	USER_PRIV_USER = 1

	USER_FILTER_NORMAL_ACCOUNT = 0x0002
	USER_MAX_PREFERRED_LENGTH  = 0xFFFFFFFF
)

// USER_INFO_0 carries only the account name; used for enumeration.
type USER_INFO_0 struct {
	Usri0_name *uint16
}

type USER_INFO_1 struct {
	Usri1_name         *uint16
	Usri1_password     *uint16
	Usri1_password_age uint32
	Usri1_priv         uint32
	Usri1_home_dir     *uint16
	Usri1_comment      *uint16
	Usri1_flags        uint32
	Usri1_script_path  *uint16
}

// USER_INFO_23 is the Go representation of the Windows _USER_INFO_23 struct,
// which carries the account's SID alongside its names and flags.
//
// See: https://docs.microsoft.com/en-us/windows/win32/api/lmaccess/ns-lmaccess-user_info_23
type USER_INFO_23 struct {
	Usri23_name      *uint16
	Usri23_full_name *uint16
	Usri23_comment   *uint16
	Usri23_flags     uint32
	Usri23_user_sid  uintptr
}

type USER_INFO_1007 struct {
	Usri1007_comment *uint16
}

type USER_INFO_1008 struct {
	Usri1008_flags uint32
}

type USER_INFO_1011 struct {
	Usri1011_full_name *uint16
}
