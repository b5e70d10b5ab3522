package domain

type ID string
type Version int

func (vo ID) String() string {
	return string(vo)
}

func (vo ID) IsZero() bool {
	return vo == ""
}

type Name string

func (vo Name) String() string {
	return string(vo)
}

// Actor identifies who issued a change, taken from the X-User-ID header.
type Actor string

const AnonymousActor Actor = "anonymous"
