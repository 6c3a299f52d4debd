package joystick

// KV is the minimal key/value surface the calibration store needs. The
// firmware backs it with a flash block; tests back it with a map.
type KV interface {
	GetInt(key string, def int) int
	GetFloat(key string, def float64) float64
	PutInt(key string, v int) error
	PutFloat(key string, v float64) error
}

// Store loads and saves a Calibration through a KV, one key per
// parameter so a partially written record degrades to per-key defaults
// instead of losing everything.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Keys used in the backing store. Renaming one orphans persisted values.
const (
	keyXMin     = "cal.x.min"
	keyXCenter  = "cal.x.center"
	keyXMax     = "cal.x.max"
	keyYMin     = "cal.y.min"
	keyYCenter  = "cal.y.center"
	keyYMax     = "cal.y.max"
	keyDeadzone = "cal.deadzone"
	keyRotation = "cal.rotation"
	keyMirror   = "cal.mirror"
)

// Load reads the persisted calibration, falling back to the defaults for
// any missing key. If the result fails validation the defaults are
// returned wholesale so the device always boots usable.
func (s *Store) Load() Calibration {
	def := DefaultCalibration()
	cal := Calibration{
		X: Axis{
			Min:    s.kv.GetInt(keyXMin, def.X.Min),
			Center: s.kv.GetInt(keyXCenter, def.X.Center),
			Max:    s.kv.GetInt(keyXMax, def.X.Max),
		},
		Y: Axis{
			Min:    s.kv.GetInt(keyYMin, def.Y.Min),
			Center: s.kv.GetInt(keyYCenter, def.Y.Center),
			Max:    s.kv.GetInt(keyYMax, def.Y.Max),
		},
		Deadzone: s.kv.GetFloat(keyDeadzone, def.Deadzone),
		Mirror:   s.kv.GetInt(keyMirror, 0) != 0,
	}
	rot, err := ParseRotation(s.kv.GetInt(keyRotation, int(def.Rotation)))
	if err != nil {
		rot = def.Rotation
	}
	cal.Rotation = rot
	if err := cal.Validate(); err != nil {
		return def
	}
	return cal
}

// Save writes every parameter, returning the first error. A failed save
// leaves the in-memory calibration active; the caller reports the error
// and carries on.
func (s *Store) Save(cal Calibration) error {
	mirror := 0
	if cal.Mirror {
		mirror = 1
	}
	if err := s.kv.PutInt(keyXMin, cal.X.Min); err != nil {
		return err
	}
	if err := s.kv.PutInt(keyXCenter, cal.X.Center); err != nil {
		return err
	}
	if err := s.kv.PutInt(keyXMax, cal.X.Max); err != nil {
		return err
	}
	if err := s.kv.PutInt(keyYMin, cal.Y.Min); err != nil {
		return err
	}
	if err := s.kv.PutInt(keyYCenter, cal.Y.Center); err != nil {
		return err
	}
	if err := s.kv.PutInt(keyYMax, cal.Y.Max); err != nil {
		return err
	}
	if err := s.kv.PutFloat(keyDeadzone, cal.Deadzone); err != nil {
		return err
	}
	if err := s.kv.PutInt(keyRotation, int(cal.Rotation)); err != nil {
		return err
	}
	return s.kv.PutInt(keyMirror, mirror)
}
