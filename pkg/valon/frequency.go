package valon

// frequencyVars is the fractional-N encoding of one output frequency:
// output = (ncount + frac/mod) * epdf / dbf.
type frequencyVars struct {
	ncount uint32
	frac   uint32
	mod    uint32
	dbf    uint32
}

// selectDBF picks the smallest output divider in {1,2,4,8,16} that lifts
// the VCO above its minimum, clamping at 16 when even that is not enough.
func selectDBF(targetMHz float64, vcoMin uint16) uint32 {
	dbf := uint32(1)
	for targetMHz*float64(dbf) <= float64(vcoMin) && dbf <= 16 {
		dbf *= 2
	}
	if dbf > 16 {
		dbf = 16
	}
	return dbf
}

// solveFrequency derives the fractional-N variables for a target output
// frequency. The fraction frac/mod is reduced to lowest terms; a zero
// numerator or modulus collapses to the integer-only case frac=0, mod=1.
func solveFrequency(targetMHz float64, vcoMin uint16, epdf, spacingMHz float64) frequencyVars {
	dbf := selectDBF(targetMHz, vcoMin)
	vco := targetMHz * float64(dbf)

	ncount := uint32(vco / epdf)
	frac := uint32((vco-float64(ncount)*epdf)/spacingMHz + 0.5)
	mod := uint32(epdf/spacingMHz + 0.5)

	if frac != 0 && mod != 0 {
		if g := gcd(frac, mod); g > 1 {
			frac /= g
			mod /= g
		}
	} else {
		frac = 0
		mod = 1
	}

	return frequencyVars{ncount: ncount, frac: frac, mod: mod, dbf: dbf}
}

// outputFrequency is the inverse of solveFrequency. A zero modulus read
// from the device is treated as no fractional part.
func outputFrequency(v frequencyVars, epdf float64) float64 {
	frac := 0.0
	if v.mod != 0 {
		frac = float64(v.frac) / float64(v.mod)
	}
	return (float64(v.ncount) + frac) * epdf / float64(v.dbf)
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// effectivePDF computes the phase detector frequency in MHz from the
// reference frequency in Hz and the reference path options.
func effectivePDF(referenceHz uint32, o Options) float64 {
	f := float64(referenceHz) / 1e6
	if o.DoubleRef {
		f *= 2
	}
	if o.HalfRef {
		f /= 2
	}
	if o.Divider > 1 {
		f /= float64(o.Divider)
	}
	return f
}

// dbfToCode maps an output divider to its 3-bit register code.
func dbfToCode(dbf uint32) uint32 {
	switch dbf {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	case 16:
		return 4
	}
	return 0
}

// codeToDBF is the inverse of dbfToCode; unknown codes fall back to 1.
func codeToDBF(code uint32) uint32 {
	switch code {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 4
	case 3:
		return 8
	case 4:
		return 16
	}
	return 1
}
