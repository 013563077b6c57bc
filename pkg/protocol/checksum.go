package protocol

// Checksum returns the modulo-256 sum of p. The same sum covers reply
// payloads on queries and address+payload frames on commands.
func Checksum(p []byte) byte {
	var sum byte
	for _, b := range p {
		sum += b
	}
	return sum
}

// VerifyChecksum reports whether got is the checksum of p.
func VerifyChecksum(p []byte, got byte) bool {
	return Checksum(p) == got
}
