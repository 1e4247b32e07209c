package appcontext

const (
	EnvServer Env = iota
	EnvCLI
	EnvTest
)

// Env tells the fx graph which flavor of process it is being assembled for,
// so that config loading and logging can adapt their behavior.
type Env int

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
