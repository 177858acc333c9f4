// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

// defaultFile is the built-in calculus of variations registry. Domain
// order is the thread priority order.
var defaultFile = File{
	Fallback: "classical_calcvar",
	CorePhrases: []string{
		"calculus of variations",
		"variational method",
		"variational problem",
		"euler-lagrange",
		"euler lagrange",
	},
	SecondaryPhrases: []string{
		"variational inequality",
		"variational formulation",
		"variational principle",
		"minimization problem",
		"energy functional",
		"functional minimization",
	},
	Domains: []Domain{
		{
			ID:          "classical_calcvar",
			Name:        "Classical Methods",
			Description: "Euler-Lagrange equations, necessary conditions, sufficient conditions, Hamilton's principle, and classical variational techniques.",
			Terms: []string{
				"euler-lagrange",
				"euler lagrange",
				"first variation",
				"second variation",
				"legendre condition",
				"weierstrass",
				"calculus of variations",
				"variational problem",
				"variational principle",
			},
		},
		{
			ID:          "direct_methods",
			Name:        "Direct Methods",
			Description: "Lower semicontinuity, coercivity, weak convergence in Sobolev spaces, existence theorems via minimization.",
			Terms: []string{
				"lower semicontinuity",
				"coercivity",
				"weak convergence",
				"sobolev",
				"reflexive",
				"direct method",
				"minimizing sequence",
				"weak lower semicontinuity",
				"existence theorem",
				"compactness",
				"weak topology",
				"functional analysis",
				"banach space",
				"morrey",
				"growth condition",
			},
		},
		{
			ID:          "regularity",
			Name:        "Regularity Theory",
			Description: "Regularity of minimizers, partial regularity, De Giorgi-Nash-Moser theory, Schauder estimates.",
			Terms: []string{
				"partial regularity",
				"hölder continuity",
				"holder continuity",
				"de giorgi",
				"moser",
				"nash",
				"regularity of minimizers",
				"elliptic regularity",
				"schauder",
				"hölder",
				"lipschitz",
				"harnack",
				"a priori estimates",
				"bootstrap",
				"blow-up",
				"singular set",
				"hausdorff dimension",
				"almgren",
				"regularity elliptic",
				"mingione",
			},
		},
		{
			ID:          "geometric",
			Name:        "Geometric Problems",
			Description: "Minimal surfaces, harmonic maps, geodesics, curvature flows, Plateau problem, geometric measure theory.",
			Terms: []string{
				"minimal surfaces",
				"minimal surface",
				"harmonic maps",
				"harmonic map",
				"geodesics",
				"geodesic",
				"curvature flow",
				"plateau problem",
				"area functional",
				"willmore",
				"mean curvature",
				"ricci flow",
				"varifold",
				"current",
				"rectifiable",
				"geometric measure",
				"area minimizing",
				"stationary varifold",
				"constant mean curvature",
			},
		},
		{
			ID:          "optimal_control",
			Name:        "Optimal Control",
			Description: "Pontryagin maximum principle, dynamic programming, Hamilton-Jacobi-Bellman equations, viscosity solutions.",
			Terms: []string{
				"pontryagin",
				"bellman",
				"hamilton-jacobi",
				"hamilton jacobi",
				"viscosity solutions",
				"viscosity solution",
				"optimal control",
				"dynamic programming",
			},
		},
		{
			ID:          "convexity",
			Name:        "Convexity & Relaxation",
			Description: "Quasiconvexity, polyconvexity, rank-one convexity, relaxation of variational problems, Young measures.",
			Terms: []string{
				"quasiconvexity",
				"quasiconvex",
				"polyconvexity",
				"polyconvex",
				"rank-one convexity",
				"rank one convexity",
				"relaxation",
				"young measures",
				"young measure",
				"convex integration",
				"nonlinear elasticity",
				"martensitic",
				"shape memory",
				"laminates",
				"rank-one connection",
				"tartar conjecture",
				"morrey conjecture",
				"differential inclusion",
				"rigidity estimate",
			},
		},
		{
			ID:          "gamma_convergence",
			Name:        "Γ-Convergence",
			Description: "Gamma-convergence, homogenization, dimension reduction, variational limits of sequences of functionals.",
			Terms: []string{
				"gamma-convergence",
				"gamma convergence",
				"homogenization",
				"thin structures",
				"dimension reduction",
				"asymptotic analysis",
				"energy scaling",
				"scaling law",
				"microstructure",
				"thin film",
				"epitaxial",
				"mosco convergence",
				"epi-convergence",
				"variational limit",
				"effective energy",
				"continuum limit",
				"discrete to continuum",
				"stochastic homogenization",
			},
		},
		{
			ID:          "optimal_transport",
			Name:        "Optimal Transport",
			Description: "Monge-Kantorovich problem, Wasserstein distances, Brenier's theorem, displacement convexity, gradient flows.",
			Terms: []string{
				"wasserstein",
				"monge-kantorovich",
				"monge kantorovich",
				"brenier",
				"displacement convexity",
				"optimal transport",
				"mass transport",
				"kantorovich",
				"gradient flow",
				"jko scheme",
				"benamou-brenier",
				"entropic regularization",
				"sinkhorn",
				"wasserstein gradient",
				"otto calculus",
			},
		},
		{
			ID:          "free_discontinuity",
			Name:        "Free Discontinuity",
			Description: "Mumford-Shah functional, SBV functions, phase field models, Ginzburg-Landau vortices, Allen-Cahn and Cahn-Hilliard equations, sharp and diffuse interface limits.",
			Terms: []string{
				"mumford-shah",
				"free discontinuity",
				"sbv",
				"special functions of bounded variation",
				"segmentation",
				"crack propagation",
				"fracture mechanics variational",
				"phase field",
				"ginzburg-landau",
				"allen-cahn",
				"cahn-hilliard",
				"sharp interface limit",
				"diffuse interface",
				"modica-mortola",
			},
		},
	},
	AuthorSeeds: []string{
		"Lawrence Craig Evans",
		"Ennio De Giorgi",
		"Enrico Giusti",
		"Jürgen Jost",
		"Michael Struwe",
		"Luigi Ambrosio",
		"Gianni Dal Maso",
		"Andrea Braides",
		"Bernard Dacorogna",
		"Mariano Giaquinta",
		"Stefan Müller",
		"Irene Fonseca",
		"Giovanni Leoni",
		"Haim Brezis",
		"Louis Nirenberg",
		"Pierre-Louis Lions",
		"Cédric Villani",
		"Alessio Figalli",
		"Camillo De Lellis",
		"Tristan Rivière",
		"Yann Brenier",
		"Robert McCann",
		"Felix Otto",
		"Barbara Zwicknagl",
		"Ivar Ekeland",
		"Paul Rabinowitz",
		"Antonio Ambrosetti",
		"Charles Morrey",
		"Luciano Modica",
		"Emanuele Spadaro",
		"Giuseppe Mingione",
		"Nicola Fusco",
		"Lihe Wang",
		"Jan Kristensen",
		"Frank Duzaar",
		"Klaus Ecker",
		"Richard Schoen",
		"Shing-Tung Yau",
		"Frederick Almgren",
		"Leon Simon",
		"William Meeks",
		"Gerhard Huisken",
		"Tobias Colding",
		"William Minicozzi",
		"Wendell Fleming",
		"Hitoshi Ishii",
		"Guy Barles",
		"Michael Crandall",
		"John Ball",
		"Kewei Zhang",
		"Sergio Conti",
		"Georg Dolzmann",
		"Bernd Kirchheim",
		"Adriana Garroni",
		"Roberto Alicandro",
		"Marco Cicalese",
		"Matteo Focardi",
		"Anastasija Pešić",
		"Giuseppe Savaré",
		"Nicola Gigli",
		"Karl-Theodor Sturm",
		"Filippo Santambrogio",
		"Wilfrid Gangbo",
		"Craig Evans",
		"Massimiliano Morini",
		"Antonin Chambolle",
		"Matteo Novaga",
		"Giovanni Alberti",
		"Sylvia Serfaty",
		"Etienne Sandier",
		"Fabrice Bethuel",
		"Guido De Philippis",
		"Giuseppe Buttazzo",
		"François Murat",
		"Luc Tartar",
		"Luis Caffarelli",
		"Maria Colombo",
		"Vladimir Šverák",
		"Robert V. Kohn",
		"Andrea Malchiodi",
		"Nassif Ghoussoub",
		"Enrico Valdinoci",
		"Ovidiu Savin",
		"Xavier Cabré",
		"Henri Berestycki",
		"Luis Silvestre",
		"Tobias Rivière",
		"Filippo Cagnetti",
		"Dorin Bucur",
		"Gilles Francfort",
	},
	KeywordQueries: []string{
		"calculus of variations",
		"variational methods",
		"Euler-Lagrange equation",
		"optimal control theory",
		"direct methods calculus of variations",
		"Sobolev spaces variational",
		"Gamma-convergence",
		"minimal surfaces",
		"isoperimetric problems",
		"Hamilton-Jacobi equations",
		"functional analysis variational",
		"regularity theory minimizers",
		"relaxation calculus of variations",
		"Young measures",
		"quasiconvexity",
		"polyconvexity",
		"free boundary problems variational",
		"variational inequalities",
		"mountain pass theorem",
		"critical point theory",
		"Palais-Smale condition",
		"concentration compactness",
		"compensated compactness",
		"microstructure variational",
		"phase transitions variational",
		"shape optimization",
		"optimal transport variational",
		"geodesics variational",
		"harmonic maps",
		"geometric measure theory",
		"free discontinuity problems",
		"Mumford-Shah functional",
		"Ginzburg-Landau vortices",
		"Allen-Cahn equation",
		"BV functions variational",
		"sets of finite perimeter",
		"gradient flows Wasserstein",
		"mean curvature flow",
		"Willmore functional",
		"nonlinear elasticity energy",
		"semicontinuity integrals",
		"Morrey conjecture",
		"Plateau problem surfaces",
		"regularity elliptic systems",
		"singular perturbation variational",
		"phase field models",
		"free boundary regularity",
		"Cahn-Hilliard equation",
		"stochastic optimal control",
		"mean field games",
	},
}
