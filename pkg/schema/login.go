package schema

// LoginForm is the reactive login definition: the password threshold is
// strict (length must exceed 4, empty input rejected). The synchronous
// controller variant uses ClassicLoginForm instead; the two thresholds are
// intentionally different and must stay that way.
func LoginForm() Form {
	return Form{
		Name:   "login",
		Action: "/login",
		Method: "POST",
		Fields: []Field{
			{
				Name:        "email",
				Label:       "Email",
				Placeholder: "you@example.com",
				Rules:       []Rule{EmailRule("Enter a valid email")},
			},
			{
				Name:   "password",
				Label:  "Password",
				Secret: true,
				Rules:  []Rule{LongerThanRule(4, "Password must be longer than 4 characters")},
			},
		},
	}
}

// ClassicLoginForm is the validate-on-demand login definition: the password
// must be at least 4 characters, and empty input is tolerated until commit.
func ClassicLoginForm() Form {
	return Form{
		Name:   "login",
		Action: "/login",
		Method: "POST",
		Fields: []Field{
			{
				Name:        "email",
				Label:       "Email",
				Placeholder: "you@example.com",
				Rules:       []Rule{EmailRule("Enter a valid email")},
			},
			{
				Name:   "password",
				Label:  "Password",
				Secret: true,
				Rules:  []Rule{MinLengthRule(4, "Password must be at least 4 characters")},
			},
		},
	}
}
