package validation

var RegisterSchema = Schema{
	Name: "register",
	Fields: []Field{
		{Name: "name", Kind: String, Required: true, Rules: "min=3,max=30"},
		{Name: "email", Kind: String, Required: true, Rules: "email"},
		{Name: "password", Kind: String, Required: true, Rules: "min=6,max=72"},
		{Name: "role", Kind: String, Rules: "oneof=user manager admin"},
	},
}

var LoginSchema = Schema{
	Name: "login",
	Fields: []Field{
		{Name: "email", Kind: String, Required: true, Rules: "email"},
		{Name: "password", Kind: String, Required: true},
	},
}

var WeatherSchema = Schema{
	Name: "weather",
	Fields: []Field{
		{Name: "city", Kind: String, Required: true, Rules: "min=1,max=100"},
	},
}

var TaskSchema = Schema{
	Name: "task",
	Fields: []Field{
		{Name: "text", Kind: String, Required: true, Rules: "min=1,max=500"},
	},
}
