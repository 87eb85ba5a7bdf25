package user

import "fmt"

// LogonType selects the kind of logon performed by Authenticate (LOGON32_LOGON_*).
type LogonType uint32

const (
	LogonInteractive      LogonType = 2
	LogonNetwork          LogonType = 3
	LogonBatch            LogonType = 4
	LogonService          LogonType = 5
	LogonUnlock           LogonType = 7
	LogonNetworkCleartext LogonType = 8
	LogonNewCredentials   LogonType = 9
)

// LogonProvider selects the logon provider (LOGON32_PROVIDER_*).
type LogonProvider uint32

const (
	ProviderDefault LogonProvider = 0
	ProviderWinNT35 LogonProvider = 1
	ProviderWinNT40 LogonProvider = 2
	ProviderWinNT50 LogonProvider = 3
	ProviderVirtual LogonProvider = 4
)

var logonTypeNames = map[LogonType]string{
	LogonInteractive:      "interactive",
	LogonNetwork:          "network",
	LogonBatch:            "batch",
	LogonService:          "service",
	LogonUnlock:           "unlock",
	LogonNetworkCleartext: "network-cleartext",
	LogonNewCredentials:   "new-credentials",
}

var logonProviderNames = map[LogonProvider]string{
	ProviderDefault: "default",
	ProviderWinNT35: "winnt35",
	ProviderWinNT40: "winnt40",
	ProviderWinNT50: "winnt50",
	ProviderVirtual: "virtual",
}

// Valid reports whether t is a LOGON32_LOGON_* value.
func (t LogonType) Valid() bool {
	_, ok := logonTypeNames[t]
	return ok
}

func (t LogonType) String() string {
	if name, ok := logonTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("LogonType(%d)", uint32(t))
}

// Valid reports whether p is a LOGON32_PROVIDER_* value.
func (p LogonProvider) Valid() bool {
	_, ok := logonProviderNames[p]
	return ok
}

func (p LogonProvider) String() string {
	if name, ok := logonProviderNames[p]; ok {
		return name
	}
	return fmt.Sprintf("LogonProvider(%d)", uint32(p))
}

// LogonOptions controls Authenticate. Zero fields take the manager's
// defaults, which are domain ".", LogonNetwork and ProviderDefault unless
// overridden with WithLogonDefaults.
type LogonOptions struct {
	Domain   string
	Type     LogonType
	Provider LogonProvider
}

func (o LogonOptions) withDefaults(d LogonOptions) LogonOptions {
	if o.Domain == "" {
		o.Domain = d.Domain
	}
	if o.Type == 0 {
		o.Type = d.Type
	}
	if o.Provider == 0 {
		o.Provider = d.Provider
	}
	return o
}

// DefaultLogonOptions are the logon defaults of a new Manager.
var DefaultLogonOptions = LogonOptions{
	Domain:   ".",
	Type:     LogonNetwork,
	Provider: ProviderDefault,
}
