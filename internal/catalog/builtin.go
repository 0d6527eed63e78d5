package catalog

// Feelings is the long answer to questions about the bot's feelings
const Feelings = "I'm just a program, so I don't have feelings the way you do. " +
	"But I'm always happy to keep you company!"

// DefaultFallbacks are used when nothing in the catalog matches
var DefaultFallbacks = []string{
	"Could you please re-phrase that?",
	"...",
	"Sounds about right.",
	"What does that mean?",
}

// BuiltinDefinition returns the rule table compiled into the program
func BuiltinDefinition() Definition {
	return Definition{
		Fallback: append([]string(nil), DefaultFallbacks...),
		Rules: []RuleDefinition{
			{
				Name:        "greeting",
				Response:    "Hello!",
				Recognized:  []string{"hy", "hello", "hey", "aloha"},
				AlwaysScore: true,
			},
			{
				Name:       "doing_fine",
				Response:   "I am doing fine, and you?",
				Recognized: []string{"how", "are", "you", "doing"},
				Required:   []string{"how"},
			},
			{
				Name:       "thanks",
				Response:   "You are welcome",
				Recognized: []string{"thank", "you", "for", "you're", "help"},
				Required:   []string{"thank", "you"},
			},
			{
				Name:       "feelings",
				Response:   Feelings,
				Recognized: []string{"do", "you", "have", "feelings"},
				Required:   []string{"feelings"},
			},
		},
	}
}

// Builtin returns the built-in catalog
func Builtin(opts Options) *Catalog {
	if opts.Source == "" {
		opts.Source = "builtin"
	}
	return MustBuild(BuiltinDefinition(), opts)
}
