//go:build windows && amd64

package user

import (
	"strings"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/pkg/errors"
	"github.com/scjalliance/comshim"

	"github.com/iamacarpet/go-winusers/internal/libraries/userenv"
	so "github.com/iamacarpet/go-winusers/shared"
)

// userenvProfiles is the ProfileStore backed by userenv.dll, with lookups
// answered by WMI's Win32_UserProfile class.
type userenvProfiles struct{}

// NewUserenvProfiles returns the ProfileStore of the local machine.
func NewUserenvProfiles() ProfileStore {
	return userenvProfiles{}
}

// Create creates the profile. CreateProfile reports failure as an HRESULT,
// so an existing profile comes back as HRESULT_FROM_WIN32(ERROR_ALREADY_EXISTS).
func (userenvProfiles) Create(sid, name string) (string, error) {
	usernamePtr, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert user name to UTF16")
	}
	sidPtr, err := syscall.UTF16PtrFromString(sid)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert SID to UTF16")
	}
	buffer := make([]uint16, userenv.MAX_PATH)
	hr, _, _ := userenv.CreateProfile.Call(
		uintptr(unsafe.Pointer(sidPtr)),
		uintptr(unsafe.Pointer(usernamePtr)),
		uintptr(unsafe.Pointer(&buffer[0])),
		uintptr(len(buffer)),
	)
	if int32(hr) < 0 {
		return "", statusErr("CreateProfile", uint32(hr))
	}
	return syscall.UTF16ToString(buffer), nil
}

func (userenvProfiles) Delete(sid string) error {
	sidPtr, err := syscall.UTF16PtrFromString(sid)
	if err != nil {
		return errors.Wrap(err, "failed to convert SID to UTF16")
	}
	r1, _, err := userenv.DeleteProfileW.Call(
		uintptr(unsafe.Pointer(sidPtr)),
		uintptr(0), // lpProfilePath, looked up from the SID
		uintptr(0), // lpComputerName, the local machine
	)
	if r1 == 0 {
		return lastErr("DeleteProfileW", err)
	}
	return nil
}

// Lookup asks WMI for the LocalPath of the profile owned by sid.
func (userenvProfiles) Lookup(sid string) (string, error) {
	if strings.ContainsAny(sid, `'\`) {
		return "", errors.Errorf("malformed SID %q", sid)
	}

	comshim.Add(1)
	defer comshim.Done()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return "", errors.Wrap(err, "unable to create initial object")
	}
	defer unknown.Release()
	wmi, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", errors.Wrap(err, "unable to create initial object")
	}
	defer wmi.Release()
	serviceRaw, err := oleutil.CallMethod(wmi, "ConnectServer", nil, `\\.\ROOT\CIMV2`)
	if err != nil {
		return "", errors.Wrap(err, "unable to connect to WMI")
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", "SELECT LocalPath FROM Win32_UserProfile WHERE SID = '"+sid+"'")
	if err != nil {
		return "", errors.Wrap(err, "unable to execute query while looking up profile")
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return "", errors.Wrap(err, "unable to get property Count while looking up profile")
	}
	if countVar.Val == 0 {
		return "", so.NewOperationError("Win32_UserProfile", so.ERROR_FILE_NOT_FOUND)
	}

	itemRaw, err := oleutil.CallMethod(result, "ItemIndex", 0)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch result row while looking up profile")
	}
	item := itemRaw.ToIDispatch()
	defer item.Release()

	path, err := oleutil.GetProperty(item, "LocalPath")
	if err != nil {
		return "", errors.Wrap(err, "error while getting property LocalPath from Win32_UserProfile")
	}
	return path.ToString(), nil
}
