package runner

const DefaultWarmupIterations = 0

type Config struct {
	// WarmupIterations is the number of rounds of probe calls made before
	// the measured run. Each round calls every default callback once.
	WarmupIterations int
}

func DefaultConfig() Config {
	return Config{
		WarmupIterations: DefaultWarmupIterations,
	}
}
