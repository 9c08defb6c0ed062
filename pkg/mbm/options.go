package mbm

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

type options struct {
	logger Logger
}

// Option は読み込みのオプション
type Option func(*options)

// WithLogger は未知の制御コードなどの診断メッセージの出力先を指定します
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: discardLogger{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
