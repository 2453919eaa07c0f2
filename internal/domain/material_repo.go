package domain

type MaterialRepository interface {
	CreateMaterial(material *Material) error
	GetMaterialByID(id string) (*Material, error)
	GetMaterials() ([]*Material, error)
	GetMaterialsBySubject(subject string) ([]*Material, error)
	GetMaterialsByLevel(level string) ([]*Material, error)
	UpdateMaterial(material *Material) error
	DeleteMaterial(id string) error
}
