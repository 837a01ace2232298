package dateinput

// Options configures a Widget.
type Options struct {
	// Name is used by the presentation layer for "required" messages.
	Name string
	// ReadOnly is passed through to the presentation layer; the widget does
	// not block edits itself.
	ReadOnly            bool
	MinDate             BoundSource
	MaxDate             BoundSource
	MinDateErrorContent string
	MaxDateErrorContent string
	// IsDateOfBirth relaxes the year rule to allow years starting with 1.
	IsDateOfBirth bool
	// Messages overrides DefaultMessages per kind.
	Messages map[Kind]string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Messages != nil {
		messages := make(map[Kind]string, len(opts.Messages))
		for kind, message := range opts.Messages {
			messages[kind] = message
		}
		opts.Messages = messages
	}
	return opts
}

// Message returns the configured message for kind.
func (o Options) Message(kind Kind) string {
	if message, ok := o.Messages[kind]; ok && message != "" {
		return message
	}
	switch kind {
	case KindMinDate:
		return o.MinDateErrorContent
	case KindMaxDate:
		return o.MaxDateErrorContent
	}
	return DefaultMessages[kind]
}

func WithName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Name = name
	}
}

func WithReadOnly(readOnly bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ReadOnly = readOnly
	}
}

func WithMinDate(src BoundSource) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinDate = src
	}
}

func WithMaxDate(src BoundSource) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxDate = src
	}
}

func WithMinDateErrorContent(message string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinDateErrorContent = message
	}
}

func WithMaxDateErrorContent(message string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxDateErrorContent = message
	}
}

func WithDateOfBirth(dob bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IsDateOfBirth = dob
	}
}

// WithMessages overrides messages for the given kinds. Bound kinds override
// the min/max error content.
func WithMessages(messages map[Kind]string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if o.Messages == nil {
			o.Messages = make(map[Kind]string, len(messages))
		}
		for kind, message := range messages {
			o.Messages[kind] = message
		}
	}
}
