package options

type OptionConstructor[T any] func() T

func ApplyOptions[T any, F ~func(*T)](constructor OptionConstructor[T], cbs []F) T {
	var opts T

	if constructor != nil {
		opts = constructor()
	}

	for _, cb := range cbs {
		cb(&opts)
	}

	return opts
}
