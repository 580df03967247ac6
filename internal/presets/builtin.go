package presets

import "github.com/vovakirdan/tetris-ga/internal/agent"

func init() {
	Register(Preset{
		Name:        "pytris",
		Description: "genotype the reference player ships with",
		Genotype: agent.Genotype{
			0.5501233868775208, -0.45474448395384504, -0.032619056589323896,
			-0.4054268211077717, -0.42503073375086964, -0.12941049261789878,
			0.15512310177762675, -1.4142555391926974, 0.8136523639225275,
		},
	})
	Register(Preset{
		Name:        "pytris-alt",
		Description: "earlier recorded genotype it replaced",
		Genotype: agent.Genotype{
			-0.7255216469812669, -0.734674596688063, -0.44155695690797003,
			-0.012949057576052692, -0.6886875589233459, 0.8379280068158563,
			-0.8355259931400796, 0.3028779001998809, 0.22814520433580232,
		},
	})
}
