//go:build windows && amd64

package user

import (
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/iamacarpet/go-winusers/identity/flags"
	"github.com/iamacarpet/go-winusers/internal"
	"github.com/iamacarpet/go-winusers/internal/libraries/netapi32"
	so "github.com/iamacarpet/go-winusers/shared"
)

// netDirectory is the Directory backed by the local SAM through the
// NetUser* functions of netapi32.dll.
type netDirectory struct{}

// NewNetDirectory returns the Directory of the local machine.
func NewNetDirectory() Directory {
	return netDirectory{}
}

func (netDirectory) Lookup(name string) (so.LocalAccount, error) {
	var dataPointer uintptr
	uPointer, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return so.LocalAccount{}, errors.Wrap(err, "unable to encode username to UTF16")
	}
	ret, _, _ := netapi32.NetUserGetInfo.Call(
		uintptr(0),                            // servername
		uintptr(unsafe.Pointer(uPointer)),     // username
		uintptr(uint32(23)),                   // level, request USER_INFO_23
		uintptr(unsafe.Pointer(&dataPointer)), // Pointer to struct.
	)
	if dataPointer != uintptr(0) {
		defer netapi32.NetApiBufferFree.Call(dataPointer)
	}
	if ret != netapi32.NERR_Success {
		return so.LocalAccount{}, statusErr("NetUserGetInfo", uint32(ret))
	} else if dataPointer == uintptr(0) {
		return so.LocalAccount{}, errors.New("null pointer while fetching account")
	}

	data := (*netapi32.USER_INFO_23)(unsafe.Pointer(dataPointer))
	account := so.LocalAccount{
		Name:     internal.UTF16toString(data.Usri23_name),
		FullName: internal.UTF16toString(data.Usri23_full_name),
		Comment:  internal.UTF16toString(data.Usri23_comment),
		Flags:    flags.Flags(data.Usri23_flags),
	}
	if data.Usri23_user_sid != 0 {
		account.SID = (*windows.SID)(unsafe.Pointer(data.Usri23_user_sid)).String()
	}
	return account, nil
}

func (netDirectory) Enumerate() ([]string, error) {
	var (
		resumeHandle uintptr
		names        = make([]string, 0)
	)
	for {
		var (
			dataPointer  uintptr
			entriesRead  uint32
			entriesTotal uint32
		)
		ret, _, _ := netapi32.NetUserEnum.Call(
			uintptr(0),         // servername
			uintptr(uint32(0)), // level, USER_INFO_0
			uintptr(uint32(netapi32.USER_FILTER_NORMAL_ACCOUNT)), // filter, only "normal" accounts.
			uintptr(unsafe.Pointer(&dataPointer)),                // struct buffer for output data.
			uintptr(uint32(netapi32.USER_MAX_PREFERRED_LENGTH)),  // allow as much memory as required.
			uintptr(unsafe.Pointer(&entriesRead)),
			uintptr(unsafe.Pointer(&entriesTotal)),
			uintptr(unsafe.Pointer(&resumeHandle)),
		)
		if ret != netapi32.NERR_Success && syscall.Errno(ret) != netapi32.ERROR_MORE_DATA {
			return nil, statusErr("NetUserEnum", uint32(ret))
		}
		if dataPointer != uintptr(0) {
			entries := unsafe.Slice((*netapi32.USER_INFO_0)(unsafe.Pointer(dataPointer)), entriesRead)
			for _, entry := range entries {
				names = append(names, internal.UTF16toString(entry.Usri0_name))
			}
			netapi32.NetApiBufferFree.Call(dataPointer)
		}
		if syscall.Errno(ret) != netapi32.ERROR_MORE_DATA {
			return names, nil
		}
	}
}

func (netDirectory) Add(name, password string, f flags.Flags) error {
	var parmErr uint32
	var err error
	uInfo := netapi32.USER_INFO_1{
		Usri1_priv:  netapi32.USER_PRIV_USER,
		Usri1_flags: uint32(f),
	}
	uInfo.Usri1_name, err = syscall.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrap(err, "unable to encode username to UTF16")
	}
	uInfo.Usri1_password, err = syscall.UTF16PtrFromString(password)
	if err != nil {
		return errors.Wrap(err, "unable to encode password to UTF16")
	}
	ret, _, _ := netapi32.NetUserAdd.Call(
		uintptr(0),
		uintptr(uint32(1)),
		uintptr(unsafe.Pointer(&uInfo)),
		uintptr(unsafe.Pointer(&parmErr)),
	)
	if ret != netapi32.NERR_Success {
		return statusErr("NetUserAdd", uint32(ret))
	}
	return nil
}

func (netDirectory) Remove(name string) error {
	uPointer, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrap(err, "unable to encode username to UTF16")
	}
	ret, _, _ := netapi32.NetUserDel.Call(
		uintptr(0),
		uintptr(unsafe.Pointer(uPointer)),
	)
	if ret != netapi32.NERR_Success {
		return statusErr("NetUserDel", uint32(ret))
	}
	return nil
}

// Update applies each field with its own NetUserSetInfo level. A failure
// part way leaves the earlier fields applied.
func (d netDirectory) Update(name string, req so.UpdateRequest) error {
	if req.FullName != nil {
		fPointer, err := syscall.UTF16PtrFromString(*req.FullName)
		if err != nil {
			return errors.Wrap(err, "unable to encode full name to UTF16")
		}
		if err := setInfo(name, 1011, unsafe.Pointer(&netapi32.USER_INFO_1011{Usri1011_full_name: fPointer})); err != nil {
			return err
		}
	}
	if req.Comment != nil {
		cPointer, err := syscall.UTF16PtrFromString(*req.Comment)
		if err != nil {
			return errors.Wrap(err, "unable to encode comment to UTF16")
		}
		if err := setInfo(name, 1007, unsafe.Pointer(&netapi32.USER_INFO_1007{Usri1007_comment: cPointer})); err != nil {
			return err
		}
	}
	if req.Flags == nil && req.ClearFlags == nil {
		return nil
	}
	account, err := d.Lookup(name)
	if err != nil {
		return err
	}
	eFlags := account.Flags
	if req.Flags != nil {
		eFlags |= *req.Flags // add supplied bits to mask.
	}
	if req.ClearFlags != nil {
		eFlags &^= *req.ClearFlags // clear bits we want to remove.
	}
	return setInfo(name, 1008, unsafe.Pointer(&netapi32.USER_INFO_1008{Usri1008_flags: uint32(eFlags)}))
}

func setInfo(name string, level uint32, info unsafe.Pointer) error {
	var errParam uint32
	uPointer, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrap(err, "unable to encode username to UTF16")
	}
	ret, _, _ := netapi32.NetUserSetInfo.Call(
		uintptr(0),                        // servername
		uintptr(unsafe.Pointer(uPointer)), // username
		uintptr(level),                    // level
		uintptr(info),
		uintptr(unsafe.Pointer(&errParam)),
	)
	if ret != netapi32.NERR_Success {
		return statusErr("NetUserSetInfo", uint32(ret))
	}
	return nil
}

func (netDirectory) ChangePassword(name, oldPassword, newPassword string) error {
	uPointer, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrap(err, "unable to encode username to UTF16")
	}
	oPointer, err := syscall.UTF16PtrFromString(oldPassword)
	if err != nil {
		return errors.Wrap(err, "unable to encode old password to UTF16")
	}
	nPointer, err := syscall.UTF16PtrFromString(newPassword)
	if err != nil {
		return errors.Wrap(err, "unable to encode new password to UTF16")
	}
	ret, _, _ := netapi32.NetUserChangePassword.Call(
		uintptr(0), // domainname, the local machine
		uintptr(unsafe.Pointer(uPointer)),
		uintptr(unsafe.Pointer(oPointer)),
		uintptr(unsafe.Pointer(nPointer)),
	)
	if ret != netapi32.NERR_Success {
		return statusErr("NetUserChangePassword", uint32(ret))
	}
	return nil
}
