package ionex

// tecuToM2 converts TECu to electrons per square meter (1 TECu = 10^16 m^-2).
const tecuToM2 = 1.0e16

// TEC is a Total Electron Content estimate, with an optional RMS
// companion and an optional altitude offset used by 3D height maps.
type TEC struct {
	// Tecu is the TEC estimate quantized in TECu.
	Tecu Quantized

	// Rms is the TEC root mean square, when determined.
	Rms *Quantized

	// Height is the altitude offset for complex 3D height maps.
	Height *Quantized
}

// TECFromTecu builds a TEC from an estimate expressed in TECu.
func TECFromTecu(tecu float64) TEC {
	return TEC{Tecu: AutoScaled(tecu)}
}

// TECFromM2 builds a TEC from a raw estimate in electrons per square meter.
func TECFromM2(tec float64) TEC {
	return TEC{Tecu: AutoScaled(tec / tecuToM2)}
}

// TECFromQuantized builds a TEC from an integer body token and the
// current decimal exponent: the token counts units of 10^exponent
// TECu, so the estimate is value * 10^exponent TECu.
func TECFromQuantized(value int64, exponent int8) TEC {
	return TEC{Tecu: Quantized{Value: value, Exponent: -exponent}.normalized()}
}

// WithTecu returns a copy with an updated TECu value,
// preserving the RMS and height companions.
func (t TEC) WithTecu(tecu float64) TEC {
	t.Tecu = AutoScaled(tecu)
	return t
}

// WithRMS returns a copy with an updated TEC root mean square.
func (t TEC) WithRMS(rms float64) TEC {
	q := AutoScaled(rms)
	t.Rms = &q
	return t
}

// setQuantizedRMS updates the root mean square from an integer body
// token and the current decimal exponent.
func (t *TEC) setQuantizedRMS(value int64, exponent int8) {
	q := Quantized{Value: value, Exponent: -exponent}.normalized()
	t.Rms = &q
}

// setQuantizedHeight updates the altitude offset from an integer body
// token and the current decimal exponent.
func (t *TEC) setQuantizedHeight(value int64, exponent int8) {
	q := Quantized{Value: value, Exponent: -exponent}.normalized()
	t.Height = &q
}

// TecuValue returns the TEC estimate in TECu.
func (t TEC) TecuValue() float64 {
	return t.Tecu.Real()
}

// M2 returns the TEC estimate in electrons per square meter.
func (t TEC) M2() float64 {
	return t.TecuValue() * tecuToM2
}

// RMS returns the TEC root mean square, when determined.
func (t TEC) RMS() (float64, bool) {
	if t.Rms == nil {
		return 0, false
	}
	return t.Rms.Real(), true
}

// HeightKm returns the altitude offset in kilometers, when determined.
func (t TEC) HeightKm() (float64, bool) {
	if t.Height == nil {
		return 0, false
	}
	return t.Height.Real(), true
}

// Scale multiplies the TECu estimate by a floating factor,
// preserving the RMS and height companions.
func (t TEC) Scale(factor float64) TEC {
	return t.WithTecu(t.TecuValue() * factor)
}

// Div divides the TECu estimate by a floating factor,
// preserving the RMS and height companions.
func (t TEC) Div(factor float64) TEC {
	return t.WithTecu(t.TecuValue() / factor)
}

// Equal reports whether both estimates decode to the same values.
func (t TEC) Equal(rhs TEC) bool {
	if !t.Tecu.Equal(rhs.Tecu) {
		return false
	}
	if (t.Rms == nil) != (rhs.Rms == nil) {
		return false
	}
	if t.Rms != nil && !t.Rms.Equal(*rhs.Rms) {
		return false
	}
	if (t.Height == nil) != (rhs.Height == nil) {
		return false
	}
	if t.Height != nil && !t.Height.Equal(*rhs.Height) {
		return false
	}
	return true
}

// clone returns a deep copy.
func (t TEC) clone() TEC {
	c := TEC{Tecu: t.Tecu}
	if t.Rms != nil {
		rms := *t.Rms
		c.Rms = &rms
	}
	if t.Height != nil {
		height := *t.Height
		c.Height = &height
	}
	return c
}
