package config

type Token struct {
	Endpoint string `hcl:"endpoint"`
	Resource string `hcl:"resource"`
	Timeout  string `hcl:"timeout"`
}

type Agent struct {
	HostEnv    string `hcl:"hostEnv"`
	Port       string `hcl:"port"`
	Path       string `hcl:"path"`
	ExpectBody string `hcl:"expectBody"`
	Timeout    string `hcl:"timeout"`
}

type Probe struct {
	Name  string `hcl:",key"`
	Token *Token `hcl:"token"`
	Agent *Agent `hcl:"agent"`
}

type Ignition struct {
	Probes []Probe `hcl:"probe"`
}
