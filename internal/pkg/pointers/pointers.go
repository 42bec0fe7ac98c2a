package pointers

func Uint(v uint) *uint { return &v }
