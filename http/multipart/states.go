package multipart

type parserState uint8

const (
	sUninitialized parserState = iota
	sStart
	sStartBoundary
	sHeaderFieldStart
	sHeaderField
	sHeaderValueStart
	sHeaderValue
	sHeaderValueAlmostDone
	sHeadersAlmostDone
	sPartDataStart
	sPartData
	sPartEnd
	sEnd
)

var stateNames = [...]string{
	sUninitialized:         "uninitialized",
	sStart:                 "start",
	sStartBoundary:         "start boundary",
	sHeaderFieldStart:      "header field start",
	sHeaderField:           "header field",
	sHeaderValueStart:      "header value start",
	sHeaderValue:           "header value",
	sHeaderValueAlmostDone: "header value almost done",
	sHeadersAlmostDone:     "headers almost done",
	sPartDataStart:         "part data start",
	sPartData:              "part data",
	sPartEnd:               "part end",
	sEnd:                   "end",
}

func (s parserState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "unknown"
}

// flagSet tells which kind of delimiter the boundary currently matched in the part data
// is followed by.
type flagSet struct {
	partBoundary, lastBoundary bool
}

// mark is an offset into the current chunk where a pending header field, header value
// or part data span begins.
type mark int

const noMark mark = -1
