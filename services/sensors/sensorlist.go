// services/sensors/sensorlist.go
package sensors

import (
	"devicehal-go/services/sensors/internal/sources"
	"devicehal-go/types"

	"tinygo.org/x/drivers"
)

var sensorList = []types.SensorInfo{
	{
		Name: "K3DH Acceleration Sensor", Vendor: "STMicroelectronics", Version: 1,
		Handle: types.HandleAccelerometer, Type: types.TypeAccelerometer,
		MaxRange: sources.RangeA, Resolution: sources.ResolutionA, Power: 0.25, MinDelay: 15000,
		StringType: "android.sensor.accelerometer",
		Flags:      types.FlagContinuousMode,
		Measures:   drivers.Acceleration,
	},
	{
		Name: "AK8975 Magnetic field Sensor", Vendor: "Asahi Kasei Microdevices", Version: 1,
		Handle: types.HandleMagneticField, Type: types.TypeMagneticField,
		MaxRange: 2000, Resolution: sources.ConvertM, Power: 6.0, MinDelay: 30000,
		StringType: "android.sensor.magnetic_field",
		Flags:      types.FlagContinuousMode,
		Measures:   drivers.MagneticField,
	},
	{
		Name: "AK8975 Orientation Sensor", Vendor: "Asahi Kasei Microdevices", Version: 1,
		Handle: types.HandleOrientation, Type: types.TypeOrientation,
		MaxRange: 360, Resolution: sources.ConvertO, Power: 7.8, MinDelay: 30000,
		StringType: "android.sensor.orientation",
		Flags:      types.FlagContinuousMode,
		Measures:   drivers.MagneticField,
	},
	{
		Name: "GP2A Light sensor", Vendor: "Sharp", Version: 1,
		Handle: types.HandleLight, Type: types.TypeLight,
		MaxRange: 3000, Resolution: 1.0, Power: 0.75,
		StringType: "android.sensor.light",
		Flags:      types.FlagOnChangeMode,
		Measures:   drivers.Luminosity,
	},
	{
		Name: "GP2A Proximity sensor", Vendor: "Sharp", Version: 1,
		Handle: types.HandleProximity, Type: types.TypeProximity,
		MaxRange: 5.0, Resolution: 5.0, Power: 0.75,
		StringType: "android.sensor.proximity",
		Flags:      types.FlagWakeUp | types.FlagOnChangeMode,
		Measures:   drivers.Distance,
	},
	{
		Name: "K3G Gyroscope sensor", Vendor: "STMicroelectronics", Version: 1,
		Handle: types.HandleGyroscope, Type: types.TypeGyroscope,
		MaxRange: sources.RangeGyro, Resolution: sources.ConvertGyro, Power: 6.1, MinDelay: 15000,
		StringType: "android.sensor.gyroscope",
		Flags:      types.FlagContinuousMode,
		Measures:   drivers.AngularVelocity,
	},
	{
		Name: "Movement Detection", Vendor: "STMicroelectronics", Version: 1,
		Handle: types.HandleSignificantMotion, Type: types.TypeSignificantMotion,
		MaxRange: 1.0, Resolution: 1.0, Power: 0.01,
		StringType: "android.sensor.significant_motion",
		Flags:      types.FlagOneShotMode | types.FlagWakeUp,
		Measures:   drivers.Acceleration,
	},
}
