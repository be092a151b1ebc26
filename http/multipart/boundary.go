package multipart

// charTable marks every byte value which occurs in the delimiter.
type charTable [256]bool

// delimiter returns the full delimiter sequence, CRLF "--" token, and the table of
// its bytes.
func delimiter(token string) (seq []byte, table charTable) {
	seq = make([]byte, 0, len("\r\n--")+len(token))
	seq = append(seq, "\r\n--"...)
	seq = append(seq, token...)

	for _, c := range seq {
		table[c] = true
	}

	return seq, table
}
