package styles

// Nerd Font icons. They need a Nerd Font to display.
const (
	IconGlobe     = "\uf0ac" // globe
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // gopher
	IconArrow     = "\uf061" // arrow right
	IconCheck     = "\uf00c" // check
	IconX         = "\uf00d" // x
	IconConfig    = "\ue615" // config
	IconDatabase  = "\uf1c0" // database
	IconCursor    = "\uf054" // chevron-right
	IconTab       = "\uf2d2" // window
	IconClock     = "\uf017" // clock
	IconBookmark  = "\uf02e" // bookmark
	IconSearch    = "\uf002" // magnifier
	IconHistory   = "\uf1da" // history
)
