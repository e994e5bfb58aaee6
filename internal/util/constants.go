package util

const (
	// Version is printed by --version.
	Version = "1.1"

	// AppName is the directory name under the XDG config home and the
	// prefix of the version line.
	AppName = "paccu"

	// ClientName is the application name announced to the audio server.
	ClientName = "Audio Output Switcher"

	// Missing replaces sink or port names and descriptions the server did
	// not report.
	Missing = "N/A"

	// DefaultTitle is the list title shown above the output targets.
	DefaultTitle = "Choose output and press ENTER or 'x' to exit"

	// DefaultHighlightSymbol prefixes the highlighted row.
	DefaultHighlightSymbol = ">> "

	// DefaultWidth is used when the terminal size is unknown.
	DefaultWidth = 80
)
