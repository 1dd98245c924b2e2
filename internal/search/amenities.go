package search

// amenityChecks maps requested amenity ids onto listing feature columns. The
// four road-proximity amenities all check truthiness of the near_main_road
// enum rather than the exact distance value; distance-aware matching is a
// product question that has not been settled.
var amenityChecks = map[string]func(*Features) bool{
	"ac":            func(f *Features) bool { return f.HasAC },
	"wifi":          func(f *Features) bool { return f.HasWifi },
	"parking":       func(f *Features) bool { return f.HasParking },
	"clientparking": func(f *Features) bool { return f.HasParking },
	"generator":     func(f *Features) bool { return f.Generator },
	"housekeeping":  func(f *Features) bool { return f.Housekeeping },
	"prepaid-meter": func(f *Features) bool { return f.PrepayMeter },
	"sonel-meter":   func(f *Features) bool { return f.SonnelMeter },
	"borehole":      func(f *Features) bool { return f.WaterWell },
	"water-heater":  func(f *Features) bool { return f.WaterHeater },
	"guard":         func(f *Features) bool { return f.SecurityGuard },
	"security":      func(f *Features) bool { return f.SecurityGuard },
	"cctv":          func(f *Features) bool { return f.CCTV },
	"fan":           func(f *Features) bool { return f.Fan },
	"tv":            func(f *Features) bool { return f.TV },
	"smart-tv":      func(f *Features) bool { return f.SmartTV },
	"netflix":       func(f *Features) bool { return f.Netflix },
	"washer":        func(f *Features) bool { return f.WashingMachine },
	"balcony":       func(f *Features) bool { return f.Balcony },
	"terrace":       func(f *Features) bool { return f.Terrace },
	"veranda":       func(f *Features) bool { return f.Veranda },
	"mezzanine":     func(f *Features) bool { return f.Mezzanine },
	"garden":        func(f *Features) bool { return f.Garden },
	"pool":          func(f *Features) bool { return f.Pool },
	"gym":           func(f *Features) bool { return f.Gym },
	"rooftop":       func(f *Features) bool { return f.Rooftop },
	"elevator":      func(f *Features) bool { return f.Elevator },
	"accessible":    func(f *Features) bool { return f.Accessible },

	"road-direct": nearRoad,
	"road-50":     nearRoad,
	"road-100":    nearRoad,
	"road-200":    nearRoad,
	"roadside":    nearRoad,
}

func nearRoad(f *Features) bool { return f.NearMainRoad != "" }
