package sensor

// Flag names a boolean release property.
type Flag string

const (
	FlagLTS          Flag = "LTS"
	FlagEOL          Flag = "EOL"
	FlagDiscontinued Flag = "Discontinued"
	FlagMaintained   Flag = "Maintained"
)

const (
	IconTrue  = "mdi:check-circle"
	IconFalse = "mdi:close-circle"
)

// BooleanStatusSensor reports one release flag as "Yes" or "No".
//
// The value is captured at construction and is not re-read on refresh. A
// changed flag only shows after the sensors are rebuilt.
type BooleanStatusSensor struct {
	entryID string
	product string
	release string
	flag    Flag
	value   bool
}

// NewBooleanStatusSensor creates a [BooleanStatusSensor] holding value.
func NewBooleanStatusSensor(entryID, product, release string, flag Flag, value bool) *BooleanStatusSensor {
	return &BooleanStatusSensor{
		entryID: entryID,
		product: product,
		release: release,
		flag:    flag,
		value:   value,
	}
}

func (s *BooleanStatusSensor) UniqueID() string {
	return normalizeID(s.entryID, s.product, s.release, string(s.flag))
}

func (s *BooleanStatusSensor) Name() string { return string(s.flag) }

// Flag returns the flag this sensor reports.
func (s *BooleanStatusSensor) Flag() Flag { return s.flag }

// Value returns the captured boolean.
func (s *BooleanStatusSensor) Value() bool { return s.value }

func (s *BooleanStatusSensor) State() string {
	if s.value {
		return "Yes"
	}
	return "No"
}

func (s *BooleanStatusSensor) DeviceClass() string { return "running" }

func (s *BooleanStatusSensor) Icon() string {
	if s.value {
		return IconTrue
	}
	return IconFalse
}

func (s *BooleanStatusSensor) EntityPicture() string { return "" }

func (s *BooleanStatusSensor) Attributes() map[string]string {
	return map[string]string{"name": string(s.flag)}
}

func (s *BooleanStatusSensor) Device() DeviceInfo {
	return deviceInfo(s.entryID, s.product, s.release)
}
