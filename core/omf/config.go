package omf

// Config is the comparison section of the application configuration.
// Negative comment lengths leave the option unset.
type Config struct {
	CaseSensitive          bool    `mapstructure:"case_sensitive" default:"true"`
	MaxTableCommentLength  int     `mapstructure:"max_table_comment_length" default:"-1"`
	MaxIndexCommentLength  int     `mapstructure:"max_index_comment_length" default:"-1"`
	MaxColumnCommentLength int     `mapstructure:"max_column_comment_length" default:"-1"`
	SkipRoutineDefiner     bool    `mapstructure:"skip_routine_definer" default:"false"`
	FloatTolerance         float64 `mapstructure:"float_tolerance" default:"0"`
}

// Options converts the section into an options bag.
func (c Config) Options() Options {
	opts := Options{
		OptCaseSensitive:      c.CaseSensitive,
		OptSkipRoutineDefiner: c.SkipRoutineDefiner,
	}
	if c.MaxTableCommentLength >= 0 {
		opts[OptMaxTableCommentLength] = c.MaxTableCommentLength
	}
	if c.MaxIndexCommentLength >= 0 {
		opts[OptMaxIndexCommentLength] = c.MaxIndexCommentLength
	}
	if c.MaxColumnCommentLength >= 0 {
		opts[OptMaxColumnCommentLength] = c.MaxColumnCommentLength
	}
	if c.FloatTolerance > 0 {
		opts[OptFloatTolerance] = c.FloatTolerance
	}
	return opts
}

// Merge returns a copy of opts with the keys of override replacing its own.
func (o Options) Merge(override Options) Options {
	out := make(Options, len(o)+len(override))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
