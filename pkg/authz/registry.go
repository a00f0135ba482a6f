package authz

const (
	RoleGestor    = "gestor"
	RoleAnalista  = "analista"
	RoleAnonymous = "anonymous"
)

const (
	ActionRead  = "read"
	ActionAdmin = "admin"
)

const DomainGlobal = "global"

const (
	ObjectVagasRegistros     = "vagas.registros"
	ObjectVagasDecisoes      = "vagas.decisoes"
	ObjectVagasSincronizacao = "vagas.sincronizacao"
	ObjectVagasExport        = "vagas.export"
	ObjectQuadroDeficit      = "quadro.deficit"
)
