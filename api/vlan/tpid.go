package vlan

// TPID is a VLAN tag protocol identifier in its hexadecimal text form.
type TPID string

const (
	// TPID8021Q is the 802.1Q customer tag.
	TPID8021Q TPID = "0x8100"
	// TPID8021AD is the 802.1ad (Q-in-Q) service tag.
	TPID8021AD TPID = "0x88a8"
)

// SupportedTPIDs returns the values accepted by SetVLANTPID.
func SupportedTPIDs() []TPID {
	return []TPID{TPID8021Q, TPID8021AD}
}

// IsSupported reports whether t is one of SupportedTPIDs.
func (t TPID) IsSupported() bool {
	for _, s := range SupportedTPIDs() {
		if t == s {
			return true
		}
	}
	return false
}

func (t TPID) String() string {
	return string(t)
}
