package ollama

// Config contains the inference backend configuration. URL is the full
// address of the generate endpoint, e.g. http://localhost:11434/api/generate.
type Config struct {
	URL     string `env:"OLLAMA_URL,required,notEmpty"`
	Model   string `env:"MODEL_NAME,required,notEmpty"`
	Timeout int    `env:"OLLAMA_TIMEOUT" envDefault:"300"` // seconds, 0 disables the client timeout
}
