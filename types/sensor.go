package types

import "tinygo.org/x/drivers"

// Handle identifies a sensor at the host boundary.
type Handle int32

// Sensor handles as published in the sensor list.
const (
	HandleAccelerometer     Handle = 0
	HandleMagneticField     Handle = 1
	HandleOrientation       Handle = 2
	HandleLight             Handle = 3
	HandleProximity         Handle = 4
	HandleGyroscope         Handle = 5
	HandleSignificantMotion Handle = 6
)

// SensorType is the host's numeric sensor type.
type SensorType int32

const (
	TypeMetaData          SensorType = 0
	TypeAccelerometer     SensorType = 1
	TypeMagneticField     SensorType = 2
	TypeOrientation       SensorType = 3
	TypeGyroscope         SensorType = 4
	TypeLight             SensorType = 5
	TypeProximity         SensorType = 8
	TypeSignificantMotion SensorType = 17
)

// Meta event kinds (Event.Data[0] of a TypeMetaData event).
const (
	MetaFlushComplete = 1
)

// Sensor flags.
const (
	FlagWakeUp         uint32 = 1 << 0
	FlagContinuousMode uint32 = 0 << 1
	FlagOnChangeMode   uint32 = 1 << 1
	FlagOneShotMode    uint32 = 2 << 1
	FlagReportingMask  uint32 = 7 << 1
)

// Batch flags.
const (
	BatchDryRun       = 1 << 0
	BatchWakeUponFull = 1 << 1
)

// EventDataLen is the fixed payload size of an Event, in float32 slots.
const EventDataLen = 16

// Event is one fixed-size sensor event. The multiplexer moves these
// without looking at the payload.
type Event struct {
	Version   int32
	Sensor    Handle
	Type      SensorType
	Timestamp int64 // ns, clock of the input subsystem
	Data      [EventDataLen]float32
	Status    int8
}

// Vector accessors for the three-axis sensors.
func (e *Event) X() float32 { return e.Data[0] }
func (e *Event) Y() float32 { return e.Data[1] }
func (e *Event) Z() float32 { return e.Data[2] }

// Sensor accuracy values carried in Event.Status.
const (
	StatusUnreliable int8 = 0
	StatusLow        int8 = 1
	StatusMedium     int8 = 2
	StatusHigh       int8 = 3
)

// SensorInfo is one entry of the static sensor list.
type SensorInfo struct {
	Name         string
	Vendor       string
	Version      int32
	Handle       Handle
	Type         SensorType
	MaxRange     float32
	Resolution   float32
	Power        float32 // mA
	MinDelay     int32   // us, 0 for on-change sensors
	FifoReserved int32
	FifoMax      int32
	StringType   string
	Permission   string
	MaxDelay     int32
	Flags        uint32

	// Measures names the measurement class, for tooling.
	Measures drivers.Measurement
}

// ReportingMode extracts the reporting mode bits.
func (s SensorInfo) ReportingMode() uint32 { return s.Flags & FlagReportingMask }

// IsWakeUp reports whether the sensor is a wake-up sensor.
func (s SensorInfo) IsWakeUp() bool { return s.Flags&FlagWakeUp != 0 }
