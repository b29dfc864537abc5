package seeder

// Defaults returns the demo data set in dependency order. hasher digests the
// demo passwords.
func Defaults(hasher Hasher) []Seeder {
	return []Seeder{
		SkillsSeeder{Names: DefaultSkills},
		UsersSeeder{Users: DefaultUsers, Hasher: hasher},
		UserSkillsSeeder{Pairs: DefaultUserSkills},
	}
}

var DefaultSkills = []string{"dancing", "singing", "plate spinning", "juggling"}

var DefaultUsers = []Credential{
	{Username: "moe", Password: "moe_pw"},
	{Username: "lucy", Password: "lucy_pw"},
	{Username: "larry", Password: "larry_pw"},
	{Username: "ethyl", Password: "ethyl_pw"},
}

var DefaultUserSkills = []Pair{
	{Username: "moe", Skill: "dancing"},
	{Username: "ethyl", Skill: "singing"},
	{Username: "ethyl", Skill: "juggling"},
}
