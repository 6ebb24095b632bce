package roster

var firstNames = []string{ //nolint:gochecknoglobals // read-only word list
	"Aarav", "Diya", "Ishaan", "Kavya", "Rohan", "Ananya", "Vikram", "Meera",
	"Arjun", "Saanvi", "Karthik", "Nila", "Rahul", "Priya", "Siddharth", "Lakshmi",
}

var lastNames = []string{ //nolint:gochecknoglobals // read-only word list
	"Sharma", "Iyer", "Reddy", "Nair", "Menon", "Patel", "Krishnan", "Rao",
	"Gupta", "Subramanian", "Das", "Pillai", "Bose", "Verma", "Naidu", "Joshi",
}
